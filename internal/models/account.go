package models

import "time"

// Account is a user allowed to sign in
type Account struct {
	ID           string `boltholdKey:"ID"`
	Name         string
	Email        string `boltholdIndex:"Email"`
	PasswordHash []byte
	CreatedAt    time.Time
}
