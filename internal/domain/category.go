package domain

import "time"

type Category struct {
	ID        string
	Name      string
	Image     Image
	CreatedAt time.Time
	UpdatedAt time.Time
}
