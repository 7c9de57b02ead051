package extract

import (
	"context"
	"strconv"

	"gitea.jw6.us/james/oxstream/internal/activity"
	"gitea.jw6.us/james/oxstream/internal/event"
)

// TaskExtractor generates activities for tasks.
type TaskExtractor struct {
	baseURL       string
	filterUnnamed bool
}

// NewTaskExtractor creates a task extractor generating deep links to the
// given instance URL.
func NewTaskExtractor(baseURL string, filterUnnamed bool) *TaskExtractor {
	return &TaskExtractor{
		baseURL:       baseURL,
		filterUnnamed: filterUnnamed,
	}
}

// Extract fills object and target for a task event.
func (x *TaskExtractor) Extract(ctx context.Context, act *activity.Activity, ev *event.Event, action string) (bool, error) {
	send := true

	var folderID string
	if folder := ev.SourceFolder; folder != nil {
		folderID = strconv.Itoa(folder.ID)
		act.Target = &activity.Entity{
			ID:          folderID,
			ObjectType:  "open-xchange-tasks-folder",
			DisplayName: folder.Name,
			URL:         x.baseURL + tasksFrag + folderFrag + folderID,
		}
	}

	switch task := ev.Object.(type) {
	case *event.Task:
		if task.Private {
			send = false
		}

		if x.filterUnnamed && task.Title == "" {
			send = false
		}

		taskID := strconv.Itoa(task.ID)
		act.Object = &activity.Entity{
			ID:          taskID,
			ObjectType:  "open-xchange-task",
			DisplayName: task.Title,
			URL:         x.baseURL + tasksFrag + folderFrag + folderID + idFrag + folderID + "." + taskID,
		}
	case nil:
		send = false
	default:
		return false, &UnexpectedPayloadError{Domain: "task", Got: ev.Object.Kind()}
	}

	return send, nil
}
