package models

import "time"

// SupervisorAccount is a supervisor login record. SupervisorEmail doubles
// as the login key and as the soft foreign key stored on form records.
// The password is held in plaintext and compared by equality; that is the
// behaviour the deployed frontend relies on.
type SupervisorAccount struct {
	ID                 string    `db:"id" json:"-"`
	SupervisorID       string    `db:"supervisor_id" json:"SupervisorId"`
	SupervisorName     string    `db:"supervisor_name" json:"SupervisorName"`
	SupervisorEmail    string    `db:"supervisor_email" json:"SupervisorEmail"`
	SupervisorPassword string    `db:"supervisor_password" json:"-"`
	CreatedAt          time.Time `db:"created_at" json:"-"`
	UpdatedAt          time.Time `db:"updated_at" json:"-"`
}

// LoginRequest is the credential payload for supervisor login.
type LoginRequest struct {
	SupervisorEmail    string `json:"SupervisorEmail" validate:"required"`
	SupervisorPassword string `json:"SupervisorPassword" validate:"required"`
}
