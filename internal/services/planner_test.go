package services

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/mindwell-backend/internal/data/repos"
	"github.com/yungbote/mindwell-backend/internal/domain/planner"
)

func newPlanner(f *fixture) PlannerService {
	return NewPlannerService(f.db, f.log, repos.NewTaskRepo(f.db, f.log), repos.NewCalendarActivityRepo(f.db, f.log))
}

func ptr[T any](v T) *T { return &v }

func TestPlannerTaskLifecycle(t *testing.T) {
	f := newFixture(t)
	svc := newPlanner(f)
	u := f.user(t, "planner-tasks@example.com")
	ctx := as(f.ctx, u)

	task, err := svc.CreateTask(ctx, " Call therapist ", "2024-04-10")
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if task.Title != "Call therapist" || task.Completed {
		t.Fatalf("task: got title=%q completed=%v", task.Title, task.Completed)
	}

	updated, err := svc.UpdateTask(ctx, task.ID, TaskPatch{Completed: ptr(true), Date: ptr("2024-04-12")})
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if !updated.Completed || time.Time(updated.Date).Format(planner.DateLayout) != "2024-04-12" {
		t.Fatalf("updated: got completed=%v date=%v", updated.Completed, time.Time(updated.Date))
	}
	if updated.Title != "Call therapist" {
		t.Fatalf("untouched title changed: got=%q", updated.Title)
	}

	_, err = svc.UpdateTask(ctx, task.ID, TaskPatch{Title: ptr("   ")})
	wantAPIError(t, err, http.StatusBadRequest, "invalid_title")

	if err := svc.DeleteTask(ctx, task.ID); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	wantAPIError(t, svc.DeleteTask(ctx, task.ID), http.StatusNotFound, "task_not_found")
}

func TestPlannerTasksAreOwnerScoped(t *testing.T) {
	f := newFixture(t)
	svc := newPlanner(f)
	owner := f.user(t, "planner-owner@example.com")
	other := f.user(t, "planner-other@example.com")

	task, err := svc.CreateTask(as(f.ctx, owner), "Journal", "2024-04-10")
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	_, err = svc.UpdateTask(as(f.ctx, other), task.ID, TaskPatch{Completed: ptr(true)})
	wantAPIError(t, err, http.StatusNotFound, "task_not_found")
	wantAPIError(t, svc.DeleteTask(as(f.ctx, other), task.ID), http.StatusNotFound, "task_not_found")
	_, err = svc.UpdateTask(as(f.ctx, owner), uuid.New(), TaskPatch{})
	wantAPIError(t, err, http.StatusNotFound, "task_not_found")

	tasks, err := svc.ListTasks(as(f.ctx, other), MonthFilter{})
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("other user's tasks: want=0 got=%d", len(tasks))
	}
}

func TestPlannerMonthFilter(t *testing.T) {
	f := newFixture(t)
	svc := newPlanner(f)
	ctx := as(f.ctx, f.user(t, "planner-month@example.com"))

	for _, d := range []string{"2024-03-31", "2024-04-01", "2024-04-30", "2024-05-01"} {
		if _, err := svc.CreateTask(ctx, "task "+d, d); err != nil {
			t.Fatalf("CreateTask %s: %v", d, err)
		}
		if _, err := svc.LogActivity(ctx, "Meditation", d); err != nil {
			t.Fatalf("LogActivity %s: %v", d, err)
		}
	}

	tasks, err := svc.ListTasks(ctx, MonthFilter{Year: 2024, Month: 4})
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("april tasks: want=2 got=%d", len(tasks))
	}
	all, err := svc.ListTasks(ctx, MonthFilter{})
	if err != nil {
		t.Fatalf("ListTasks all: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("all tasks: want=4 got=%d", len(all))
	}
	activities, err := svc.ListActivities(ctx, MonthFilter{Year: 2024, Month: 4})
	if err != nil {
		t.Fatalf("ListActivities: %v", err)
	}
	if len(activities) != 2 || activities[0].Type != planner.ActivityMeditation {
		t.Fatalf("april activities: got=%d", len(activities))
	}

	for _, bad := range []MonthFilter{{Year: 2024, Month: 13}, {Year: 0, Month: 4}, {Year: 2024}} {
		_, err := svc.ListTasks(ctx, bad)
		wantAPIError(t, err, http.StatusBadRequest, "invalid_month")
	}
	_, err = svc.LogActivity(ctx, "yoga", "2024-04-01")
	wantAPIError(t, err, http.StatusBadRequest, "invalid_activity_type")
	_, err = svc.CreateTask(ctx, "x", "04/01/2024")
	wantAPIError(t, err, http.StatusBadRequest, "invalid_date")
}
