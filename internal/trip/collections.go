package trip

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/tripcrew/internal/domain"
)

// NewActivity is the input for AddActivity.
type NewActivity struct {
	Title       string
	Description string
	Date        time.Time
	StartTime   string
	EndTime     string
	Location    string
	Cost        float64
	Status      domain.ActivityStatus
	Notes       string
	Attachments []string
}

// AddActivity appends an itinerary activity. Any accepted member may add one.
func AddActivity(t *domain.Trip, requester uuid.UUID, in NewActivity) (domain.Activity, error) {
	if err := RequireMember(*t, requester); err != nil {
		return domain.Activity{}, err
	}
	title := strings.TrimSpace(in.Title)
	location := strings.TrimSpace(in.Location)
	status := in.Status
	if status == "" {
		status = domain.ActivityPlanned
	}
	switch {
	case title == "":
		return domain.Activity{}, fmt.Errorf("%w: activity title is required", domain.ErrValidation)
	case location == "":
		return domain.Activity{}, fmt.Errorf("%w: activity location is required", domain.ErrValidation)
	case in.Date.IsZero():
		return domain.Activity{}, fmt.Errorf("%w: activity date is required", domain.ErrValidation)
	case in.Cost < 0:
		return domain.Activity{}, fmt.Errorf("%w: activity cost cannot be negative", domain.ErrValidation)
	case !validActivityStatus(status):
		return domain.Activity{}, fmt.Errorf("%w: unknown activity status %q", domain.ErrValidation, status)
	}

	a := domain.Activity{
		ID:          uuid.New(),
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Date:        in.Date,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		Location:    location,
		Cost:        in.Cost,
		Status:      status,
		Notes:       strings.TrimSpace(in.Notes),
		Attachments: cleanTags(in.Attachments),
	}
	t.Activities = append(t.Activities, a)
	return a, nil
}

// NewExpense is the input for AddExpense. A nil PaidBy means the requester;
// a nil Date means now.
type NewExpense struct {
	Description string
	Amount      float64
	Category    domain.ExpenseCategory
	PaidBy      *uuid.UUID
	SharedWith  []domain.ExpenseShare
	Date        *time.Time
	Receipt     string
}

// AddExpense appends a ledger entry. Any accepted member may record one; the
// payer must be a participant of the trip.
func AddExpense(t *domain.Trip, requester uuid.UUID, in NewExpense, now time.Time) (domain.Expense, error) {
	if err := RequireMember(*t, requester); err != nil {
		return domain.Expense{}, err
	}
	desc := strings.TrimSpace(in.Description)
	category := in.Category
	if category == "" {
		category = domain.ExpenseOther
	}
	paidBy := requester
	if in.PaidBy != nil {
		paidBy = *in.PaidBy
	}
	switch {
	case desc == "":
		return domain.Expense{}, fmt.Errorf("%w: expense description is required", domain.ErrValidation)
	case in.Amount < 0:
		return domain.Expense{}, fmt.Errorf("%w: expense amount cannot be negative", domain.ErrValidation)
	case !validExpenseCategory(category):
		return domain.Expense{}, fmt.Errorf("%w: unknown expense category %q", domain.ErrValidation, category)
	}
	if _, ok := FindParticipant(*t, paidBy); !ok {
		return domain.Expense{}, fmt.Errorf("%w: paid_by must be a participant", domain.ErrValidation)
	}
	for i, s := range in.SharedWith {
		if s.UserID == uuid.Nil || s.Amount < 0 {
			return domain.Expense{}, fmt.Errorf("%w: shared_with[%d] needs a user and a non-negative amount",
				domain.ErrValidation, i)
		}
	}
	date := now
	if in.Date != nil {
		date = *in.Date
	}

	e := domain.Expense{
		ID:          uuid.New(),
		Description: desc,
		Amount:      in.Amount,
		Category:    category,
		PaidBy:      paidBy,
		SharedWith:  slices.Clone(in.SharedWith),
		Date:        date,
		Receipt:     strings.TrimSpace(in.Receipt),
	}
	t.Expenses = append(t.Expenses, e)
	return e, nil
}

// NewChecklistItem is one entry of a NewChecklist.
type NewChecklistItem struct {
	Text       string
	AssignedTo *uuid.UUID
	DueDate    *time.Time
}

// NewChecklist is the input for AddChecklist.
type NewChecklist struct {
	Title string
	Items []NewChecklistItem
}

// AddChecklist appends a checklist with all items open.
func AddChecklist(t *domain.Trip, requester uuid.UUID, in NewChecklist) (domain.Checklist, error) {
	if err := RequireMember(*t, requester); err != nil {
		return domain.Checklist{}, err
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return domain.Checklist{}, fmt.Errorf("%w: checklist title is required", domain.ErrValidation)
	}
	items := make([]domain.ChecklistItem, 0, len(in.Items))
	for i, it := range in.Items {
		text := strings.TrimSpace(it.Text)
		if text == "" {
			return domain.Checklist{}, fmt.Errorf("%w: items[%d] text is required", domain.ErrValidation, i)
		}
		items = append(items, domain.ChecklistItem{
			ID:         uuid.New(),
			Text:       text,
			AssignedTo: it.AssignedTo,
			DueDate:    it.DueDate,
		})
	}

	c := domain.Checklist{ID: uuid.New(), Title: title, Items: items}
	t.Checklists = append(t.Checklists, c)
	return c, nil
}

// SetChecklistItem marks a checklist item completed or open.
func SetChecklistItem(t *domain.Trip, requester, checklistID, itemID uuid.UUID, completed bool) (domain.ChecklistItem, error) {
	if err := RequireMember(*t, requester); err != nil {
		return domain.ChecklistItem{}, err
	}
	ci := slices.IndexFunc(t.Checklists, func(c domain.Checklist) bool { return c.ID == checklistID })
	if ci < 0 {
		return domain.ChecklistItem{}, domain.ErrChecklistNotFound
	}
	checklist := t.Checklists[ci]
	ii := slices.IndexFunc(checklist.Items, func(it domain.ChecklistItem) bool { return it.ID == itemID })
	if ii < 0 {
		return domain.ChecklistItem{}, domain.ErrChecklistNotFound
	}

	checklist.Items = slices.Clone(checklist.Items)
	checklist.Items[ii].Completed = completed
	lists := slices.Clone(t.Checklists)
	lists[ci] = checklist
	t.Checklists = lists
	return checklist.Items[ii], nil
}

// NewNote is the input for AddNote.
type NewNote struct {
	Title   string
	Content string
}

// AddNote pins an important note to the trip.
func AddNote(t *domain.Trip, requester uuid.UUID, in NewNote, now time.Time) (domain.ImportantNote, error) {
	if err := RequireMember(*t, requester); err != nil {
		return domain.ImportantNote{}, err
	}
	title := strings.TrimSpace(in.Title)
	content := strings.TrimSpace(in.Content)
	if title == "" && content == "" {
		return domain.ImportantNote{}, fmt.Errorf("%w: note needs a title or content", domain.ErrValidation)
	}

	n := domain.ImportantNote{
		ID:        uuid.New(),
		Title:     title,
		Content:   content,
		CreatedAt: now,
		CreatedBy: requester,
	}
	t.ImportantNotes = append(t.ImportantNotes, n)
	return n, nil
}

func validActivityStatus(s domain.ActivityStatus) bool {
	switch s {
	case domain.ActivityPlanned, domain.ActivityConfirmed, domain.ActivityCompleted, domain.ActivityCancelled:
		return true
	}
	return false
}

func validExpenseCategory(c domain.ExpenseCategory) bool {
	switch c {
	case domain.ExpenseTransportation, domain.ExpenseAccommodation, domain.ExpenseFood,
		domain.ExpenseActivities, domain.ExpenseShopping, domain.ExpenseOther:
		return true
	}
	return false
}
