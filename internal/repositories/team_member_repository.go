package repositories

import (
	"database/sql"

	"github.com/alimgiray/coursetrack/internal/models"
)

type TeamMemberRepository struct {
	db *sql.DB
}

func NewTeamMemberRepository(db *sql.DB) *TeamMemberRepository {
	return &TeamMemberRepository{db: db}
}

// Create creates a new team member
func (r *TeamMemberRepository) Create(member *models.TeamMember) error {
	query := `
		INSERT INTO team_members (id, student_id, name, role, declared_username, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		member.ID, member.StudentID, member.Name, member.Role, member.DeclaredUsername, member.CreatedAt,
	)
	return translate(err)
}

// GetByID retrieves a team member by ID
func (r *TeamMemberRepository) GetByID(id string) (*models.TeamMember, error) {
	query := `
		SELECT id, student_id, name, role, declared_username, created_at
		FROM team_members WHERE id = ?
	`

	member := &models.TeamMember{}
	err := r.db.QueryRow(query, id).Scan(
		&member.ID, &member.StudentID, &member.Name, &member.Role, &member.DeclaredUsername, &member.CreatedAt,
	)
	if err != nil {
		return nil, translate(err)
	}
	return member, nil
}

// GetByStudentID retrieves a student's team in declaration order
func (r *TeamMemberRepository) GetByStudentID(studentID string) ([]*models.TeamMember, error) {
	query := `
		SELECT id, student_id, name, role, declared_username, created_at
		FROM team_members WHERE student_id = ?
		ORDER BY created_at, rowid
	`

	rows, err := r.db.Query(query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []*models.TeamMember
	for rows.Next() {
		member := &models.TeamMember{}
		err := rows.Scan(
			&member.ID, &member.StudentID, &member.Name, &member.Role, &member.DeclaredUsername, &member.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}

	return members, rows.Err()
}

// Delete deletes a team member by ID
func (r *TeamMemberRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM team_members WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}
