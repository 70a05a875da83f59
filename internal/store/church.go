package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/rnvv/igreja/internal/model"
)

type ChurchStore struct {
	db *sql.DB
}

func NewChurchStore(db *sql.DB) *ChurchStore {
	return &ChurchStore{db: db}
}

func scanChurch(scanner interface{ Scan(...any) error }) (*model.Church, error) {
	var c model.Church
	err := scanner.Scan(&c.ID, &c.Name, &c.Email, &c.PasswordHash, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

const churchCols = `id, name, email, password_hash, created_at, updated_at`

func (s *ChurchStore) Create(name, email, passwordHash string) (*model.Church, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" {
		return nil, fmt.Errorf("name and email are required")
	}

	result, err := s.db.Exec(
		`INSERT INTO churches (name, email, password_hash) VALUES (?, ?, ?)`,
		name, email, passwordHash,
	)
	if err != nil {
		return nil, fmt.Errorf("insert church: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *ChurchStore) GetByID(id int64) (*model.Church, error) {
	row := s.db.QueryRow(`SELECT `+churchCols+` FROM churches WHERE id = ?`, id)
	c, err := scanChurch(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get church: %w", err)
	}
	return c, nil
}

func (s *ChurchStore) GetByEmail(email string) (*model.Church, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	row := s.db.QueryRow(`SELECT `+churchCols+` FROM churches WHERE email = ?`, email)
	c, err := scanChurch(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get church by email: %w", err)
	}
	return c, nil
}
