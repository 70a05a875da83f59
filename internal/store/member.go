package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/rnvv/igreja/internal/model"
)

type MemberStore struct {
	db *sql.DB
}

func NewMemberStore(db *sql.DB) *MemberStore {
	return &MemberStore{db: db}
}

func scanMember(scanner interface{ Scan(...any) error }) (*model.Member, error) {
	var m model.Member
	err := scanner.Scan(
		&m.ID, &m.ChurchID, &m.Name, &m.Address, &m.Phone, &m.Email, &m.Instagram,
		&m.Married, &m.HasChildren, &m.Baptized, &m.SpouseName, &m.ChildrenNames,
		&m.BaptismAge, &m.BirthDate, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

const memberCols = `id, church_id, name, address, phone, email, instagram,
	married, has_children, baptized, spouse_name, children_names,
	baptism_age, birth_date, created_at`

// Create inserts a member row. The church id comes from the caller's session,
// never from form input.
func (s *MemberStore) Create(m model.Member) (*model.Member, error) {
	m.Name = strings.TrimSpace(m.Name)
	if m.ChurchID == 0 {
		return nil, fmt.Errorf("church id is required")
	}
	if m.Name == "" {
		return nil, fmt.Errorf("name is required")
	}

	result, err := s.db.Exec(
		`INSERT INTO members (church_id, name, address, phone, email, instagram,
			married, has_children, baptized, spouse_name, children_names,
			baptism_age, birth_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ChurchID, m.Name, m.Address, m.Phone, m.Email, m.Instagram,
		m.Married, m.HasChildren, m.Baptized, m.SpouseName, m.ChildrenNames,
		m.BaptismAge, m.BirthDate,
	)
	if err != nil {
		return nil, fmt.Errorf("insert member: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *MemberStore) GetByID(id int64) (*model.Member, error) {
	row := s.db.QueryRow(`SELECT `+memberCols+` FROM members WHERE id = ?`, id)
	m, err := scanMember(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get member: %w", err)
	}
	return m, nil
}

// ListByChurch returns every member of the church, ordered by name ascending.
func (s *MemberStore) ListByChurch(churchID int64) ([]model.Member, error) {
	rows, err := s.db.Query(
		`SELECT `+memberCols+` FROM members WHERE church_id = ? ORDER BY name COLLATE NOCASE`,
		churchID,
	)
	if err != nil {
		return nil, fmt.Errorf("query members: %w", err)
	}
	defer rows.Close()

	var members []model.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		members = append(members, *m)
	}
	return members, rows.Err()
}

// ListRecent returns the most recently added members, newest first.
func (s *MemberStore) ListRecent(churchID int64, limit int) ([]model.Member, error) {
	rows, err := s.db.Query(
		`SELECT `+memberCols+` FROM members WHERE church_id = ?
		 ORDER BY created_at DESC, id DESC LIMIT ?`,
		churchID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query recent members: %w", err)
	}
	defer rows.Close()

	var members []model.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recent member: %w", err)
		}
		members = append(members, *m)
	}
	return members, rows.Err()
}

func (s *MemberStore) CountByChurch(churchID int64) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM members WHERE church_id = ?`, churchID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count members: %w", err)
	}
	return count, nil
}
