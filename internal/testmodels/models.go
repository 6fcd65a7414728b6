/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package testmodels holds entity types and blueprints shared by the
// package tests.
package testmodels

import (
	"strings"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
)

// Bar keeps its only field unexported.
type Bar struct {
	bar string
}

// NewBar is the production constructor the factory bypasses.
func NewBar(bar string) *Bar {
	return &Bar{bar: bar}
}

func (b *Bar) Bar() string { return b.bar }

// Foo nests a Bar by default. Its bar field is loosely typed so variants
// can store plain values there.
type Foo struct {
	bar any
	baz string
	qux string
}

func (f *Foo) Bar() any    { return f.bar }
func (f *Foo) Baz() string { return f.baz }
func (f *Foo) Qux() string { return f.qux }

// Email is a validated address.
type Email string

// Domain returns the part after "@".
func (e Email) Domain() string {
	_, domain, _ := strings.Cut(string(e), "@")
	return domain
}

// Account mixes exported and unexported fields with text-marshalled types.
type Account struct {
	ID        uuid.UUID
	email     Email
	name      string
	balance   int64
	tags      []string
	createdAt *strfmt.DateTime `fixture:"created_at"`
}

func (a *Account) Email() Email                { return a.email }
func (a *Account) Name() string                { return a.name }
func (a *Account) Balance() int64              { return a.balance }
func (a *Account) Tags() []string              { return a.tags }
func (a *Account) CreatedAt() *strfmt.DateTime { return a.createdAt }
