package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/nordvik-dev/medlemshub/internal/domain/common/errorz"
	"github.com/nordvik-dev/medlemshub/internal/domain/dto"
	"github.com/nordvik-dev/medlemshub/internal/domain/entity"
	"github.com/nordvik-dev/medlemshub/pkg/logger/types"
)

type TaskStorage interface {
	Create(ctx context.Context, task *entity.Task) (*entity.Task, error)
	Get(ctx context.Context, id string) (*entity.Task, error)
	Update(ctx context.Context, task *entity.Task) (*entity.Task, error)
	GetByEventID(ctx context.Context, eventID string) ([]entity.Task, error)
	GetGroup(ctx context.Context, eventID *string, name string) ([]entity.Task, error)
}

type taskUserStorage interface {
	Get(ctx context.Context, id string) (*entity.User, error)
}

type taskEventStorage interface {
	Get(ctx context.Context, id string) (*entity.Event, error)
	GetVolunteerTicket(ctx context.Context, eventID string) (*entity.Ticket, error)
}

type taskParticipation interface {
	IsSoldOut(ctx context.Context, event *entity.Event) (bool, error)
	IsParticipant(ctx context.Context, eventID, userID string) (bool, error)
	Grant(ctx context.Context, userID string, ticket *entity.Ticket) error
}

type TaskService struct {
	logger *types.Logger

	storage       TaskStorage
	users         taskUserStorage
	events        taskEventStorage
	participation taskParticipation
}

func NewTaskService(
	logger *types.Logger,
	storage TaskStorage,
	users taskUserStorage,
	events taskEventStorage,
	participation taskParticipation,
) *TaskService {
	return &TaskService{
		logger: logger,

		storage:       storage,
		users:         users,
		events:        events,
		participation: participation,
	}
}

// IsQualified reports whether the user holds every badge the task requires.
// Tasks without requirements accept anyone.
func IsQualified(user *entity.User, required []entity.SkillBadge) bool {
	if len(required) == 0 {
		return true
	}
	held := make(map[string]struct{}, len(user.SkillBadges))
	for _, badge := range user.SkillBadges {
		held[badge.ID] = struct{}{}
	}
	for _, badge := range required {
		if _, ok := held[badge.ID]; !ok {
			return false
		}
	}
	return true
}

// DoDateRangesOverlap treats ranges as half-open intervals: ranges that only
// touch at an endpoint do not overlap.
func DoDateRangesOverlap(start1, end1, start2, end2 time.Time) bool {
	return start1.Before(end2) && end1.After(start2)
}

func (s *TaskService) Create(ctx context.Context, task *entity.Task) (*entity.Task, error) {
	if task.Status == "" {
		task.Status = entity.TaskStatusTodo
	}
	if !task.Status.Valid() {
		return nil, errorz.InvalidStatus
	}
	return s.storage.Create(ctx, task)
}

func (s *TaskService) Get(ctx context.Context, id string) (*entity.Task, error) {
	return s.storage.Get(ctx, id)
}

// Assign books the task for the user. Booking a shift of a sold-out event
// that overlaps the event itself makes the volunteer a participant through
// the event's volunteer ticket.
func (s *TaskService) Assign(ctx context.Context, userID, taskID string) error {
	task, err := s.storage.Get(ctx, taskID)
	if err != nil {
		return err
	}
	if task.AssigneeID != nil {
		return errorz.AlreadyAssigned
	}

	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return err
	}
	if !IsQualified(user, task.SkillBadges) {
		return errorz.Unqualified
	}

	if task.EventID != nil {
		if err = s.grantVolunteerTicket(ctx, user, task); err != nil {
			return err
		}
	}

	task.AssigneeID = &user.ID
	_, err = s.storage.Update(ctx, task)
	return err
}

// Unassign releases the booking. Only the assignee can give a shift back.
func (s *TaskService) Unassign(ctx context.Context, userID, taskID string) error {
	task, err := s.storage.Get(ctx, taskID)
	if err != nil {
		return err
	}
	if task.AssigneeID == nil || *task.AssigneeID != userID {
		return errorz.NotAssignee
	}
	task.AssigneeID = nil
	_, err = s.storage.Update(ctx, task)
	return err
}

// MoveStatus moves the card to another kanban column. When the task has a
// reviewer, only the reviewer may move it to done.
func (s *TaskService) MoveStatus(ctx context.Context, taskID string, target entity.TaskStatus, actorID string) error {
	if !target.Valid() {
		return errorz.InvalidStatus
	}
	task, err := s.storage.Get(ctx, taskID)
	if err != nil {
		return err
	}
	if target == entity.TaskStatusDone && task.ReviewerID != nil && *task.ReviewerID != actorID {
		return errorz.NotReviewer
	}
	task.Status = target
	_, err = s.storage.Update(ctx, task)
	return err
}

// Board returns the event's tasks partitioned into kanban columns.
func (s *TaskService) Board(ctx context.Context, eventID string) (*dto.Board, error) {
	tasks, err := s.storage.GetByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	var board dto.Board
	for _, task := range tasks {
		switch task.Status {
		case entity.TaskStatusTodo:
			board.Todo = append(board.Todo, task)
		case entity.TaskStatusInProgress:
			board.InProgress = append(board.InProgress, task)
		case entity.TaskStatusInReview:
			board.InReview = append(board.InReview, task)
		case entity.TaskStatusDone:
			board.Done = append(board.Done, task)
		}
	}
	return &board, nil
}

// Shifts lists the event's shifts grouped by name.
func (s *TaskService) Shifts(ctx context.Context, eventID string) ([]dto.ShiftGroup, error) {
	tasks, err := s.storage.GetByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return GroupShifts(tasks), nil
}

// NextAvailable finds the next unassigned shift in the task's group that
// starts at or after the task's end, or nil if the group has none.
func (s *TaskService) NextAvailable(ctx context.Context, taskID string) (*entity.Task, error) {
	task, err := s.storage.Get(ctx, taskID)
	if err != nil {
		return nil, err
	}
	group, err := s.storage.GetGroup(ctx, task.EventID, task.Name)
	if err != nil {
		return nil, err
	}
	for i := range group {
		candidate := &group[i]
		if candidate.ID == task.ID || candidate.AssigneeID != nil {
			continue
		}
		if candidate.StartTime.Before(task.EndTime) {
			continue
		}
		return candidate, nil
	}
	return nil, nil
}

// GroupShifts buckets shifts by name and orders both the groups and the
// shifts inside each group by (start, end, name).
func GroupShifts(tasks []entity.Task) []dto.ShiftGroup {
	byName := make(map[string][]entity.Task)
	for _, task := range tasks {
		byName[task.Name] = append(byName[task.Name], task)
	}

	groups := make([]dto.ShiftGroup, 0, len(byName))
	for name, shifts := range byName {
		sort.SliceStable(shifts, func(i, j int) bool {
			return shiftLess(shifts[i], shifts[j])
		})
		groups = append(groups, dto.ShiftGroup{Name: name, Tasks: shifts})
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return shiftLess(groups[i].Tasks[0], groups[j].Tasks[0])
	})
	return groups
}

func shiftLess(a, b entity.Task) bool {
	if !a.StartTime.Equal(b.StartTime) {
		return a.StartTime.Before(b.StartTime)
	}
	if !a.EndTime.Equal(b.EndTime) {
		return a.EndTime.Before(b.EndTime)
	}
	return a.Name < b.Name
}

func (s *TaskService) grantVolunteerTicket(ctx context.Context, user *entity.User, task *entity.Task) error {
	event, err := s.events.Get(ctx, *task.EventID)
	if err != nil {
		return err
	}
	soldOut, err := s.participation.IsSoldOut(ctx, event)
	if err != nil {
		return err
	}
	if !soldOut {
		return nil
	}
	isParticipant, err := s.participation.IsParticipant(ctx, event.ID, user.ID)
	if err != nil {
		return err
	}
	if isParticipant {
		return nil
	}
	if !DoDateRangesOverlap(task.StartTime, task.EndTime, event.StartTime, event.EndTime) {
		return nil
	}

	ticket, err := s.events.GetVolunteerTicket(ctx, event.ID)
	if err != nil {
		if errors.Is(err, errorz.NotFound) {
			s.logger.Warnf("event %s is sold out but has no volunteer ticket, shift booked without one", event.ID)
			return nil
		}
		return err
	}
	return s.participation.Grant(ctx, user.ID, ticket)
}
