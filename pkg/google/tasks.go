package google

import (
	"context"
	"fmt"

	"github.com/avisobot/avisobot/pkg/calendar"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	"google.golang.org/api/tasks/v1"
)

// TaskStore implements calendar.TaskStore on the user's default Google Tasks
// list.
type TaskStore struct {
	auth *Auth
}

func NewTaskStore(auth *Auth) *TaskStore {
	return &TaskStore{auth: auth}
}

func (t *TaskStore) CreateTask(ctx context.Context, cred *oauth2.Token, title, notes string) (calendar.Task, error) {
	service, err := tasks.NewService(ctx, option.WithHTTPClient(t.auth.client(ctx, cred)))
	if err != nil {
		err := fmt.Errorf("unable to create Tasks client: %v", err)
		log.Error(err)
		return calendar.Task{}, err
	}

	result, err := service.Tasks.Insert("@default", &tasks.Task{
		Title: title,
		Notes: notes,
	}).Do()
	if err != nil {
		err := fmt.Errorf("unable to insert task in Google Tasks: %v", err)
		log.Error(err)
		return calendar.Task{}, err
	}

	return calendar.Task{ID: result.Id, Title: result.Title, Notes: notes}, nil
}
