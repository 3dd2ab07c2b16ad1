package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synergysphere/synergysphere/internal/models"
	"github.com/synergysphere/synergysphere/internal/testutil"
)

func TestFindReturnsNilWhenMissing(t *testing.T) {
	s := New(testutil.NewDB(t))
	ctx := context.Background()

	project, err := s.FindProject(ctx, 404)
	require.NoError(t, err)
	assert.Nil(t, project)

	member, err := s.FindTeamMember(ctx, 1, 404)
	require.NoError(t, err)
	assert.Nil(t, member)

	message, err := s.FindMessage(ctx, 404)
	require.NoError(t, err)
	assert.Nil(t, message)

	task, err := s.FindTask(ctx, 404)
	require.NoError(t, err)
	assert.Nil(t, task)

	n, err := s.FindNotification(ctx, 404)
	require.NoError(t, err)
	assert.Nil(t, n)
}

func TestCreateTeamMember_UniquePerUserAndProject(t *testing.T) {
	gdb := testutil.NewDB(t)
	s := New(gdb)
	ctx := context.Background()

	owner := testutil.CreateUser(t, gdb, "owner")
	alice := testutil.CreateUser(t, gdb, "alice")
	project := testutil.CreateProject(t, gdb, owner, "Apollo")

	first := &models.TeamMember{UserID: alice.ID, ProjectID: project.ID, Role: models.RoleMember}
	require.NoError(t, s.CreateTeamMember(ctx, first))
	assert.Equal(t, "alice", first.User.Name)

	dup := &models.TeamMember{UserID: alice.ID, ProjectID: project.ID, Role: models.RoleAdmin}
	err := s.CreateTeamMember(ctx, dup)
	assert.ErrorIs(t, err, ErrDuplicate)

	members, err := s.ListTeamMembers(ctx, project.ID)
	require.NoError(t, err)
	assert.Len(t, members, 1)
}

func TestCreateUser_UniqueEmail(t *testing.T) {
	s := New(testutil.NewDB(t))
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, &models.User{Name: "a", Email: "a@example.com", PasswordHash: "x"}))
	err := s.CreateUser(ctx, &models.User{Name: "b", Email: "a@example.com", PasswordHash: "y"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestDeleteProject_Cascades(t *testing.T) {
	gdb := testutil.NewDB(t)
	s := New(gdb)
	ctx := context.Background()

	owner := testutil.CreateUser(t, gdb, "owner")
	bob := testutil.CreateUser(t, gdb, "bob")
	project := testutil.CreateProject(t, gdb, owner, "Apollo")
	other := testutil.CreateProject(t, gdb, owner, "Gemini")
	testutil.AddMember(t, gdb, project, bob)

	require.NoError(t, s.CreateTask(ctx, &models.Task{Title: "t1", ProjectID: project.ID}))
	require.NoError(t, s.CreateTask(ctx, &models.Task{Title: "kept", ProjectID: other.ID}))

	root := &models.Message{Content: "root", ProjectID: project.ID, UserID: owner.ID}
	require.NoError(t, s.CreateMessage(ctx, root))
	require.NoError(t, s.CreateMessage(ctx, &models.Message{Content: "reply", ProjectID: project.ID, UserID: bob.ID, ParentMessageID: &root.ID}))

	require.NoError(t, s.DeleteProject(ctx, project.ID))

	gone, err := s.FindProject(ctx, project.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	var count int64
	require.NoError(t, gdb.Model(&models.Task{}).Where("project_id = ?", project.ID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, gdb.Model(&models.Message{}).Where("project_id = ?", project.ID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, gdb.Model(&models.TeamMember{}).Where("project_id = ?", project.ID).Count(&count).Error)
	assert.Zero(t, count)

	kept, err := s.ListProjectTasks(ctx, other.ID)
	require.NoError(t, err)
	assert.Len(t, kept, 1)
}

func TestListThreads_Ordering(t *testing.T) {
	gdb := testutil.NewDB(t)
	s := New(gdb)
	ctx := context.Background()

	owner := testutil.CreateUser(t, gdb, "owner")
	project := testutil.CreateProject(t, gdb, owner, "Apollo")

	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	post := func(content string, at time.Time, parent *uint) models.Message {
		m := models.Message{
			BaseModel:       models.BaseModel{CreatedAt: at},
			Content:         content,
			ProjectID:       project.ID,
			UserID:          owner.ID,
			ParentMessageID: parent,
		}
		require.NoError(t, s.CreateMessage(ctx, &m))
		return m
	}

	older := post("older", base, nil)
	newer := post("newer", base.Add(time.Hour), nil)
	post("second reply", base.Add(20*time.Minute), &older.ID)
	post("first reply", base.Add(10*time.Minute), &older.ID)

	threads, err := s.ListThreads(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, threads, 2)

	assert.Equal(t, newer.ID, threads[0].ID)
	assert.Equal(t, older.ID, threads[1].ID)
	require.Len(t, threads[1].Replies, 2)
	assert.Equal(t, "first reply", threads[1].Replies[0].Content)
	assert.Equal(t, "second reply", threads[1].Replies[1].Content)
	assert.Equal(t, "owner", threads[1].Replies[0].User.Name)

	found, err := s.FindMessage(ctx, older.ID)
	require.NoError(t, err)
	require.Len(t, found.Replies, 2)
	assert.Equal(t, "first reply", found.Replies[0].Content)
}

func TestDeleteMessage_RemovesReplies(t *testing.T) {
	gdb := testutil.NewDB(t)
	s := New(gdb)
	ctx := context.Background()

	owner := testutil.CreateUser(t, gdb, "owner")
	project := testutil.CreateProject(t, gdb, owner, "Apollo")

	root := &models.Message{Content: "root", ProjectID: project.ID, UserID: owner.ID}
	require.NoError(t, s.CreateMessage(ctx, root))
	reply := &models.Message{Content: "reply", ProjectID: project.ID, UserID: owner.ID, ParentMessageID: &root.ID}
	require.NoError(t, s.CreateMessage(ctx, reply))
	nested := &models.Message{Content: "nested", ProjectID: project.ID, UserID: owner.ID, ParentMessageID: &reply.ID}
	require.NoError(t, s.CreateMessage(ctx, nested))

	require.NoError(t, s.DeleteMessage(ctx, root.ID))

	var count int64
	require.NoError(t, gdb.Model(&models.Message{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUpdateTask_ClearsAssignee(t *testing.T) {
	gdb := testutil.NewDB(t)
	s := New(gdb)
	ctx := context.Background()

	owner := testutil.CreateUser(t, gdb, "owner")
	project := testutil.CreateProject(t, gdb, owner, "Apollo")

	task := &models.Task{Title: "t", ProjectID: project.ID, AssignedToID: &owner.ID}
	require.NoError(t, s.CreateTask(ctx, task))
	require.NotNil(t, task.AssignedTo)

	task.AssignedToID = nil
	task.Status = models.TaskStatusDone
	require.NoError(t, s.UpdateTask(ctx, task))

	reloaded, err := s.FindTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.AssignedToID)
	assert.Nil(t, reloaded.AssignedTo)
	assert.Equal(t, models.TaskStatusDone, reloaded.Status)
}

func TestListAssignedTasks_DueDateOrder(t *testing.T) {
	gdb := testutil.NewDB(t)
	s := New(gdb)
	ctx := context.Background()

	owner := testutil.CreateUser(t, gdb, "owner")
	project := testutil.CreateProject(t, gdb, owner, "Apollo")

	later := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	sooner := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	for _, task := range []*models.Task{
		{Title: "undated", ProjectID: project.ID, AssignedToID: &owner.ID},
		{Title: "later", ProjectID: project.ID, AssignedToID: &owner.ID, DueDate: &later},
		{Title: "sooner", ProjectID: project.ID, AssignedToID: &owner.ID, DueDate: &sooner},
		{Title: "not mine", ProjectID: project.ID},
	} {
		require.NoError(t, s.CreateTask(ctx, task))
	}

	tasks, err := s.ListAssignedTasks(ctx, owner.ID)
	require.NoError(t, err)

	titles := make([]string, 0, len(tasks))
	for _, task := range tasks {
		titles = append(titles, task.Title)
		assert.Equal(t, "Apollo", task.Project.Title)
	}
	assert.Equal(t, []string{"sooner", "later", "undated"}, titles)
}

func TestListProjectsForUser(t *testing.T) {
	gdb := testutil.NewDB(t)
	s := New(gdb)
	ctx := context.Background()

	alice := testutil.CreateUser(t, gdb, "alice")
	bob := testutil.CreateUser(t, gdb, "bob")
	own := testutil.CreateProject(t, gdb, alice, "Mine")
	joined := testutil.CreateProject(t, gdb, bob, "Theirs")
	testutil.CreateProject(t, gdb, bob, "Private")
	testutil.AddMember(t, gdb, joined, alice)

	projects, err := s.ListProjectsForUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, own.ID, projects[0].ID)
	assert.Equal(t, joined.ID, projects[1].ID)
	require.Len(t, projects[1].TeamMembers, 1)
	assert.Equal(t, "alice", projects[1].TeamMembers[0].User.Name)
}

func TestNotifications(t *testing.T) {
	gdb := testutil.NewDB(t)
	s := New(gdb)
	ctx := context.Background()

	alice := testutil.CreateUser(t, gdb, "alice")
	bob := testutil.CreateUser(t, gdb, "bob")

	old := time.Now().UTC().Add(-48 * time.Hour)
	for _, n := range []*models.Notification{
		{BaseModel: models.BaseModel{CreatedAt: old}, UserID: alice.ID, Type: "a", Content: "old read", Read: true},
		{BaseModel: models.BaseModel{CreatedAt: old}, UserID: alice.ID, Type: "a", Content: "old unread"},
		{UserID: alice.ID, Type: "a", Content: "fresh"},
		{UserID: bob.ID, Type: "a", Content: "bob's"},
	} {
		require.NoError(t, s.CreateNotification(ctx, n))
	}

	all, err := s.ListNotifications(ctx, alice.ID, false)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "fresh", all[0].Content)

	unread, err := s.ListNotifications(ctx, alice.ID, true)
	require.NoError(t, err)
	assert.Len(t, unread, 2)

	removed, err := s.DeleteReadNotificationsBefore(ctx, time.Now().UTC().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	marked, err := s.MarkAllNotificationsRead(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), marked)

	unread, err = s.ListNotifications(ctx, alice.ID, true)
	require.NoError(t, err)
	assert.Empty(t, unread)

	bobs, err := s.ListNotifications(ctx, bob.ID, true)
	require.NoError(t, err)
	assert.Len(t, bobs, 1)
}
