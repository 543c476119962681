package repositories

import (
	"database/sql"

	"github.com/alimgiray/coursetrack/internal/models"
)

type ContributorAliasRepository struct {
	db *sql.DB
}

func NewContributorAliasRepository(db *sql.DB) *ContributorAliasRepository {
	return &ContributorAliasRepository{db: db}
}

// Create creates a new alias. One Bitbucket account maps to at most one person per group.
func (r *ContributorAliasRepository) Create(alias *models.ContributorAlias) error {
	query := `
		INSERT INTO contributor_aliases (id, student_id, bitbucket_username, person_name, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		alias.ID, alias.StudentID, alias.BitbucketUsername, alias.PersonName, alias.CreatedAt,
	)
	return translate(err)
}

// GetByStudentID retrieves all aliases of a group
func (r *ContributorAliasRepository) GetByStudentID(studentID string) ([]*models.ContributorAlias, error) {
	query := `
		SELECT id, student_id, bitbucket_username, person_name, created_at
		FROM contributor_aliases WHERE student_id = ?
		ORDER BY created_at, rowid
	`

	rows, err := r.db.Query(query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var aliases []*models.ContributorAlias
	for rows.Next() {
		alias := &models.ContributorAlias{}
		err := rows.Scan(
			&alias.ID, &alias.StudentID, &alias.BitbucketUsername, &alias.PersonName, &alias.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		aliases = append(aliases, alias)
	}

	return aliases, rows.Err()
}

// Delete deletes an alias by ID
func (r *ContributorAliasRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM contributor_aliases WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}
