package main

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"staybook/internal/app"
)

func loadFixture(path string) (app.Fixture, error) {
	f, err := os.Open(path)
	if err != nil {
		return app.Fixture{}, err
	}
	defer f.Close()
	return parseFixture(f)
}

func parseFixture(r io.Reader) (app.Fixture, error) {
	var fx app.Fixture
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&fx); err != nil {
		return app.Fixture{}, fmt.Errorf("parse fixture: %w", err)
	}
	if fx.Admin.Email == "" || fx.Admin.Password == "" {
		return app.Fixture{}, fmt.Errorf("parse fixture: admin email and password are required")
	}
	return fx, nil
}
