package repositories

import (
	"database/sql"
	"testing"
	"time"

	"github.com/alimgiray/coursetrack/internal/models"
	"github.com/alimgiray/coursetrack/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { db.Close() })
	return db
}

func TestStudentRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewStudentRepository(db)

	student := models.NewStudent("Kavindu Perera", "kp@x.com", "kavindu", models.RolePM)
	require.NoError(t, repo.Create(student))

	t.Run("Get by ID", func(t *testing.T) {
		found, err := repo.GetByID(student.ID)
		require.NoError(t, err)
		assert.Equal(t, "Kavindu Perera", found.Name)
		assert.Equal(t, models.RolePM, found.Role)
		assert.Equal(t, "kavindu", found.Workspace)
	})

	t.Run("Get by username ignores case", func(t *testing.T) {
		found, err := repo.GetByUsername("KAVINDU")
		require.NoError(t, err)
		assert.Equal(t, student.ID, found.ID)
	})

	t.Run("Duplicate username", func(t *testing.T) {
		dup := models.NewStudent("Someone", "", "kavindu", models.RoleQA)
		assert.ErrorIs(t, repo.Create(dup), ErrAlreadyExists)
	})

	t.Run("Update credentials", func(t *testing.T) {
		require.NoError(t, repo.UpdateCredentials(student.ID, "capstone-team", "tok"))
		found, err := repo.GetByID(student.ID)
		require.NoError(t, err)
		assert.Equal(t, "capstone-team", found.Workspace)
		assert.Equal(t, "tok", found.BitbucketToken)
	})

	t.Run("Missing student", func(t *testing.T) {
		_, err := repo.GetByID("missing")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, repo.Delete("missing"), ErrNotFound)
	})

	t.Run("List", func(t *testing.T) {
		require.NoError(t, repo.Create(models.NewStudent("Amal Silva", "", "amal", models.RoleQA)))
		students, err := repo.List()
		require.NoError(t, err)
		require.Len(t, students, 2)
		assert.Equal(t, "Amal Silva", students[0].Name)
	})
}

func TestTeamMembersAndAliasesCascade(t *testing.T) {
	db := newTestDB(t)
	students := NewStudentRepository(db)
	members := NewTeamMemberRepository(db)
	aliases := NewContributorAliasRepository(db)

	student := models.NewStudent("Kavindu Perera", "", "kavindu", models.RolePM)
	require.NoError(t, students.Create(student))

	handle := "nimals"
	first := models.NewTeamMember(student.ID, "Nimal Silva", models.RoleDeveloper, &handle)
	second := models.NewTeamMember(student.ID, "Amara Dias", models.RoleQA, nil)
	second.CreatedAt = first.CreatedAt.Add(time.Second)
	require.NoError(t, members.Create(first))
	require.NoError(t, members.Create(second))

	team, err := members.GetByStudentID(student.ID)
	require.NoError(t, err)
	require.Len(t, team, 2)
	assert.Equal(t, "Nimal Silva", team[0].Name)
	require.NotNil(t, team[0].DeclaredUsername)
	assert.Equal(t, "nimals", *team[0].DeclaredUsername)
	assert.Nil(t, team[1].DeclaredUsername)

	alias := models.NewContributorAlias(student.ID, "darkknight42", "Nimal Silva")
	require.NoError(t, aliases.Create(alias))
	assert.ErrorIs(t, aliases.Create(models.NewContributorAlias(student.ID, "darkknight42", "Amara Dias")), ErrAlreadyExists)

	require.NoError(t, students.Delete(student.ID))

	team, err = members.GetByStudentID(student.ID)
	require.NoError(t, err)
	assert.Empty(t, team)
	list, err := aliases.GetByStudentID(student.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestTeamMemberDelete(t *testing.T) {
	db := newTestDB(t)
	students := NewStudentRepository(db)
	members := NewTeamMemberRepository(db)

	student := models.NewStudent("Kavindu Perera", "", "kavindu", models.RolePM)
	require.NoError(t, students.Create(student))
	member := models.NewTeamMember(student.ID, "Nimal Silva", models.RoleDeveloper, nil)
	require.NoError(t, members.Create(member))

	require.NoError(t, members.Delete(member.ID))
	_, err := members.GetByID(member.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, members.Delete(member.ID), ErrNotFound)
}
