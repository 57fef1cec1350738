package trip

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/tripcrew/internal/domain"
)

// NewPackingItem is the input for AddItem. Zero Quantity and SharedQuantity
// default to 1, an empty Category to Other, and a nil AssignedTo to the
// requester.
type NewPackingItem struct {
	Name           string
	Quantity       int
	Category       domain.PackingCategory
	Notes          string
	AssignedTo     *uuid.UUID
	IsShared       bool
	SharedQuantity int
}

// StatusUpdate is one member's new status for a packing item.
// A nil Quantity means 1; a nil Notes clears the notes.
type StatusUpdate struct {
	Packed   bool
	Quantity *int
	Notes    *string
}

// MemberItemView is a packing item as seen by a single member.
type MemberItemView struct {
	ItemID   uuid.UUID              `json:"item_id"`
	Name     string                 `json:"name"`
	Category domain.PackingCategory `json:"category"`
	Assigned bool                   `json:"assigned"`
	Packed   bool                   `json:"packed"`
	Quantity int                    `json:"quantity"`
	PackedAt *time.Time             `json:"packed_at,omitempty"`
	Notes    string                 `json:"notes,omitempty"`
}

// MemberView is one member's personal checklist over the shared packing list.
type MemberView struct {
	Items       []MemberItemView `json:"items"`
	Progress    int              `json:"progress"`
	TotalItems  int              `json:"total_items"`
	PackedItems int              `json:"packed_items"`
}

// AddItem appends a packing item on behalf of requester, seeded with an
// unpacked status entry for the requester. Duplicate names are allowed.
// The requester must be an accepted member.
func AddItem(t *domain.Trip, requester uuid.UUID, in NewPackingItem) (domain.PackingItem, error) {
	if err := RequireMember(*t, requester); err != nil {
		return domain.PackingItem{}, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.PackingItem{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if len([]rune(name)) > MaxNameLength {
		return domain.PackingItem{}, fmt.Errorf("%w: name cannot exceed %d characters", domain.ErrValidation, MaxNameLength)
	}
	qty := in.Quantity
	if qty == 0 {
		qty = 1
	}
	if qty < 1 {
		return domain.PackingItem{}, fmt.Errorf("%w: quantity must be at least 1", domain.ErrValidation)
	}
	shared := in.SharedQuantity
	if shared == 0 {
		shared = 1
	}
	if shared < 1 {
		return domain.PackingItem{}, fmt.Errorf("%w: shared_quantity must be at least 1", domain.ErrValidation)
	}
	category := in.Category
	if category == "" {
		category = domain.PackingOther
	}
	if !validPackingCategory(category) {
		return domain.PackingItem{}, fmt.Errorf("%w: unknown category %q", domain.ErrValidation, category)
	}
	assignee := requester
	if in.AssignedTo != nil {
		assignee = *in.AssignedTo
	}
	notes := strings.TrimSpace(in.Notes)

	item := domain.PackingItem{
		ID:             uuid.New(),
		Name:           name,
		Quantity:       qty,
		Category:       category,
		Notes:          notes,
		AssignedTo:     &assignee,
		IsShared:       in.IsShared,
		SharedQuantity: shared,
		MemberStatus: []domain.MemberPackingStatus{{
			UserID:   requester,
			Packed:   false,
			Quantity: qty,
			Notes:    notes,
		}},
	}
	t.PackingList = append(t.PackingList, item)
	return item, nil
}

// SetMemberStatus records userID's own status for itemID. It is an upsert
// keyed by (item, user): an existing entry is overwritten in place and a new
// entry is appended otherwise, so a user never has two entries on one item.
// PackedAt is set to now when packed and cleared when not.
//
// Only the member's own entry is ever written, and only accepted members may
// write one.
func SetMemberStatus(t *domain.Trip, userID, itemID uuid.UUID, u StatusUpdate, now time.Time) (domain.MemberPackingStatus, error) {
	if err := RequireMember(*t, userID); err != nil {
		return domain.MemberPackingStatus{}, err
	}
	qty := 1
	if u.Quantity != nil {
		qty = *u.Quantity
	}
	if qty < 0 {
		return domain.MemberPackingStatus{}, fmt.Errorf("%w: quantity cannot be negative", domain.ErrValidation)
	}
	i := itemIndex(*t, itemID)
	if i < 0 {
		return domain.MemberPackingStatus{}, domain.ErrItemNotFound
	}

	status := domain.MemberPackingStatus{
		UserID:   userID,
		Packed:   u.Packed,
		Quantity: qty,
	}
	if u.Notes != nil {
		status.Notes = strings.TrimSpace(*u.Notes)
	}
	if u.Packed {
		at := now
		status.PackedAt = &at
	}

	item := t.PackingList[i]
	statuses := slices.Clone(item.MemberStatus)
	if j := statusIndex(item, userID); j >= 0 {
		statuses[j] = status
	} else {
		statuses = append(statuses, status)
	}
	item.MemberStatus = statuses

	list := slices.Clone(t.PackingList)
	list[i] = item
	t.PackingList = list
	return status, nil
}

// GetMemberView projects the packing list for userID. Items the user never
// recorded a status for show as unpacked with quantity 1. Progress counts
// only the user's own packed entries.
func GetMemberView(t domain.Trip, userID uuid.UUID) MemberView {
	items := make([]MemberItemView, 0, len(t.PackingList))
	packed := 0
	for _, item := range t.PackingList {
		v := MemberItemView{
			ItemID:   item.ID,
			Name:     item.Name,
			Category: item.Category,
			Assigned: item.AssignedTo != nil && *item.AssignedTo == userID,
			Quantity: 1,
		}
		if j := statusIndex(item, userID); j >= 0 {
			s := item.MemberStatus[j]
			v.Packed = s.Packed
			v.Quantity = s.Quantity
			v.PackedAt = s.PackedAt
			v.Notes = s.Notes
		}
		if v.Packed {
			packed++
		}
		items = append(items, v)
	}
	return MemberView{
		Items:       items,
		Progress:    percent(packed, len(items)),
		TotalItems:  len(items),
		PackedItems: packed,
	}
}

func itemIndex(t domain.Trip, itemID uuid.UUID) int {
	return slices.IndexFunc(t.PackingList, func(it domain.PackingItem) bool {
		return it.ID == itemID
	})
}

func statusIndex(item domain.PackingItem, userID uuid.UUID) int {
	return slices.IndexFunc(item.MemberStatus, func(s domain.MemberPackingStatus) bool {
		return s.UserID == userID
	})
}

func validPackingCategory(c domain.PackingCategory) bool {
	switch c {
	case domain.PackingEssentials, domain.PackingClothing, domain.PackingElectronics,
		domain.PackingDocuments, domain.PackingOther:
		return true
	}
	return false
}

// percent returns round(100*part/total), or 0 when total is 0.
func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(part) / float64(total)))
}
