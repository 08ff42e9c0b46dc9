package service

import (
	"context"
	"strconv"
	"testing"

	"github.com/rs/zerolog"

	"github.com/taskforge/task-system/internal/core/domain"
	"github.com/taskforge/task-system/internal/core/ports"
)

type stubProjectRepo struct {
	projects map[string]*domain.Project
	nextID   int
}

func newStubProjectRepo() *stubProjectRepo {
	return &stubProjectRepo{projects: make(map[string]*domain.Project)}
}

func (r *stubProjectRepo) Create(_ context.Context, p *domain.Project) (*domain.Project, error) {
	r.nextID++
	created := *p
	created.ID = "p" + strconv.Itoa(r.nextID)
	r.projects[created.ID] = &created
	clone := created
	return &clone, nil
}

func (r *stubProjectRepo) FindByID(_ context.Context, id string) (*domain.Project, error) {
	p, ok := r.projects[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProjectRepo) List(_ context.Context) ([]*domain.Project, error) {
	out := make([]*domain.Project, 0, len(r.projects))
	for _, p := range r.projects {
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubProjectRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.projects[id]; !ok {
		return domain.ErrProjectNotFound
	}
	delete(r.projects, id)
	return nil
}

type stubTaskRepo struct {
	tasks  map[string]*domain.Task
	nextID int
}

func newStubTaskRepo() *stubTaskRepo {
	return &stubTaskRepo{tasks: make(map[string]*domain.Task)}
}

func (r *stubTaskRepo) Create(_ context.Context, t *domain.Task) (*domain.Task, error) {
	r.nextID++
	created := *t
	created.ID = "t" + strconv.Itoa(r.nextID)
	r.tasks[created.ID] = &created
	clone := created
	return &clone, nil
}

func (r *stubTaskRepo) FindByID(_ context.Context, id string) (*domain.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *stubTaskRepo) ListByProject(_ context.Context, projectID string) ([]*domain.Task, error) {
	out := make([]*domain.Task, 0)
	for _, t := range r.tasks {
		if t.ProjectID == projectID {
			clone := *t
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubTaskRepo) Update(_ context.Context, t *domain.Task) (*domain.Task, error) {
	if _, ok := r.tasks[t.ID]; !ok {
		return nil, domain.ErrTaskNotFound
	}
	clone := *t
	r.tasks[t.ID] = &clone
	out := clone
	return &out, nil
}

type collectingDispatcher struct {
	events []ports.ActivityInput
}

func (d *collectingDispatcher) Enqueue(event ports.ActivityInput) {
	d.events = append(d.events, event)
}

func newTaskFixture(t *testing.T) (*TaskService, *stubProjectRepo, *collectingDispatcher, string) {
	t.Helper()
	projects := newStubProjectRepo()
	tasks := newStubTaskRepo()
	dispatcher := &collectingDispatcher{}
	svc := NewTaskService(tasks, projects, dispatcher, zerolog.Nop())

	project, err := projects.Create(context.Background(), &domain.Project{Name: "alpha", OwnerID: "mgr"})
	if err != nil {
		t.Fatalf("seed project: %v", err)
	}
	return svc, projects, dispatcher, project.ID
}

func TestTaskService_Create(t *testing.T) {
	svc, _, dispatcher, projectID := newTaskFixture(t)
	actor := domain.Principal{ID: "mgr", Role: domain.RoleManager}

	task, err := svc.Create(context.Background(), ports.CreateTaskInput{
		ProjectID:  projectID,
		Title:      "write report",
		AssigneeID: "emp1",
		Actor:      actor,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if task.Status != domain.DefaultTaskStatus {
		t.Fatalf("expected default status, got %s", task.Status)
	}
	if task.CreatedBy != "mgr" || task.AssigneeID != "emp1" {
		t.Fatalf("unexpected task: %+v", task)
	}
	if len(dispatcher.events) != 1 || dispatcher.events[0].Action != domain.ActivityTaskCreated {
		t.Fatalf("expected one task_created event, got %+v", dispatcher.events)
	}
}

func TestTaskService_Create_ProjectMissing(t *testing.T) {
	svc, _, _, _ := newTaskFixture(t)

	_, err := svc.Create(context.Background(), ports.CreateTaskInput{
		ProjectID:  "p999",
		Title:      "orphan",
		AssigneeID: "emp1",
		Actor:      domain.Principal{ID: "mgr", Role: domain.RoleManager},
	})
	if err != domain.ErrProjectNotFound {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestTaskService_Update_Ownership(t *testing.T) {
	svc, _, dispatcher, projectID := newTaskFixture(t)

	task, err := svc.Create(context.Background(), ports.CreateTaskInput{
		ProjectID:  projectID,
		Title:      "triage bugs",
		AssigneeID: "emp1",
		Actor:      domain.Principal{ID: "mgr", Role: domain.RoleManager},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	status := "in_progress"

	// The assignee may update their task regardless of role.
	updated, err := svc.Update(context.Background(), ports.UpdateTaskInput{
		TaskID: task.ID,
		Status: &status,
		Actor:  domain.Principal{ID: "emp1", Role: domain.RoleEmployee},
	})
	if err != nil {
		t.Fatalf("assignee update failed: %v", err)
	}
	if updated.Status != "in_progress" {
		t.Fatalf("status not applied: %s", updated.Status)
	}

	// A manager who is neither assignee nor admin is denied.
	_, err = svc.Update(context.Background(), ports.UpdateTaskInput{
		TaskID: task.ID,
		Status: &status,
		Actor:  domain.Principal{ID: "mgr", Role: domain.RoleManager},
	})
	if err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden for non-assignee, got %v", err)
	}

	// An admin may update any task.
	if _, err := svc.Update(context.Background(), ports.UpdateTaskInput{
		TaskID: task.ID,
		Status: &status,
		Actor:  domain.Principal{ID: "root", Role: domain.RoleAdmin},
	}); err != nil {
		t.Fatalf("admin update failed: %v", err)
	}

	// create + two successful updates
	if len(dispatcher.events) != 3 {
		t.Fatalf("expected 3 activity events, got %d", len(dispatcher.events))
	}
}

func TestTaskService_Update_NotFoundBeforeOwnership(t *testing.T) {
	svc, _, _, _ := newTaskFixture(t)
	status := "done"

	// A missing task is 404 even for a caller who would have been denied.
	_, err := svc.Update(context.Background(), ports.UpdateTaskInput{
		TaskID: "t999",
		Status: &status,
		Actor:  domain.Principal{ID: "nobody", Role: domain.RoleEmployee},
	})
	if err != domain.ErrTaskNotFound {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestTaskService_Update_RejectsEmptyFields(t *testing.T) {
	svc, _, _, projectID := newTaskFixture(t)

	task, _ := svc.Create(context.Background(), ports.CreateTaskInput{
		ProjectID:  projectID,
		Title:      "ship release",
		AssigneeID: "emp1",
		Actor:      domain.Principal{ID: "mgr", Role: domain.RoleManager},
	})

	empty := ""
	_, err := svc.Update(context.Background(), ports.UpdateTaskInput{
		TaskID: task.ID,
		Title:  &empty,
		Actor:  domain.Principal{ID: "emp1", Role: domain.RoleEmployee},
	})
	if err != domain.ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for empty title, got %v", err)
	}
}
