package repositories

import (
	"database/sql"

	"github.com/alimgiray/coursetrack/internal/models"
)

type StudentRepository struct {
	db *sql.DB
}

func NewStudentRepository(db *sql.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

const studentColumns = `id, name, email, bitbucket_username, workspace, bitbucket_token, role, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStudent(row rowScanner) (*models.Student, error) {
	student := &models.Student{}
	err := row.Scan(
		&student.ID, &student.Name, &student.Email, &student.BitbucketUsername,
		&student.Workspace, &student.BitbucketToken, &student.Role, &student.CreatedAt,
	)
	if err != nil {
		return nil, translate(err)
	}
	return student, nil
}

// Create creates a new student
func (r *StudentRepository) Create(student *models.Student) error {
	query := `
		INSERT INTO students (` + studentColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		student.ID, student.Name, student.Email, student.BitbucketUsername,
		student.Workspace, student.BitbucketToken, student.Role, student.CreatedAt,
	)
	return translate(err)
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(id string) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE id = ?`
	return scanStudent(r.db.QueryRow(query, id))
}

// GetByUsername retrieves a student by Bitbucket username, case-insensitively
func (r *StudentRepository) GetByUsername(username string) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE bitbucket_username = ? COLLATE NOCASE`
	return scanStudent(r.db.QueryRow(query, username))
}

// List retrieves all students ordered by name
func (r *StudentRepository) List() ([]*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students ORDER BY name, created_at`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, student)
	}

	return students, rows.Err()
}

// UpdateCredentials sets the workspace and API token used for upstream calls
func (r *StudentRepository) UpdateCredentials(id, workspace, token string) error {
	query := `UPDATE students SET workspace = ?, bitbucket_token = ? WHERE id = ?`
	return r.execAffecting(query, workspace, token, id)
}

// Delete deletes a student and, through cascading keys, their team and aliases
func (r *StudentRepository) Delete(id string) error {
	return r.execAffecting(`DELETE FROM students WHERE id = ?`, id)
}

func (r *StudentRepository) execAffecting(query string, args ...any) error {
	result, err := r.db.Exec(query, args...)
	if err != nil {
		return translate(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
