package support

import (
	"context"
	"net/url"
	"time"

	"gorm.io/gorm"

	"github.com/angelmondragon/catalogo-industrial-backend/internal/crud"
	"github.com/angelmondragon/catalogo-industrial-backend/internal/repo"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/db/models"
	"github.com/angelmondragon/catalogo-industrial-backend/pkg/enums"
)

const ticketsTable = "contact_submissions"

var statusValues = []string{
	string(enums.TicketStatusNew),
	string(enums.TicketStatusInProgress),
	string(enums.TicketStatusResolved),
	string(enums.TicketStatusClosed),
}

var priorityValues = []string{
	string(enums.TicketPriorityLow),
	string(enums.TicketPriorityNormal),
	string(enums.TicketPriorityHigh),
	string(enums.TicketPriorityUrgent),
}

var Resource = crud.Resource{
	Table: ticketsTable,
	Alias: "cs",
	Filters: []crud.Filter{
		{Param: "status", Column: "cs.status", Kind: crud.Text, Allowed: statusValues},
		{Param: "priority", Column: "cs.priority", Kind: crud.Text, Allowed: priorityValues},
		{Param: "date_from", Column: "cs.created_at", Kind: crud.From},
		{Param: "date_to", Column: "cs.created_at", Kind: crud.To},
	},
	SearchColumns: []string{"cs.ticket_number", "cs.name", "cs.email", "cs.company", "cs.subject"},
	Sorts: map[string]string{
		"newest": "cs.created_at DESC",
		"oldest": "cs.created_at ASC",
	},
	DefaultOrder: "cs.created_at DESC",
}

// TicketDTO is a contact submission as shown in the support inbox.
type TicketDTO struct {
	ID            int64                `json:"id" gorm:"column:id"`
	TicketNumber  string               `json:"ticket_number" gorm:"column:ticket_number"`
	Name          string               `json:"name" gorm:"column:name"`
	Email         string               `json:"email" gorm:"column:email"`
	Phone         *string              `json:"phone" gorm:"column:phone"`
	Company       *string              `json:"company" gorm:"column:company"`
	Subject       *string              `json:"subject" gorm:"column:subject"`
	Message       string               `json:"message" gorm:"column:message"`
	Status        enums.TicketStatus   `json:"status" gorm:"column:status"`
	Priority      enums.TicketPriority `json:"priority" gorm:"column:priority"`
	AdminNotes    *string              `json:"admin_notes" gorm:"column:admin_notes"`
	AdminResponse *string              `json:"admin_response" gorm:"column:admin_response"`
	RespondedAt   *time.Time           `json:"responded_at" gorm:"column:responded_at"`
	CreatedAt     time.Time            `json:"created_at" gorm:"column:created_at"`
	UpdatedAt     time.Time            `json:"updated_at" gorm:"column:updated_at"`
}

type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

func (r *Repository) Create(ctx context.Context, ticket *models.ContactSubmission) error {
	return r.DB(ctx).Create(ticket).Error
}

func (r *Repository) List(ctx context.Context, values url.Values) (crud.Page[TicketDTO], error) {
	q, err := Resource.ParseQuery(values)
	if err != nil {
		return crud.Page[TicketDTO]{}, err
	}
	return crud.List[TicketDTO](ctx, r.Conn(), Resource, q)
}

func (r *Repository) Get(ctx context.Context, id int64) (*TicketDTO, error) {
	return crud.Get[TicketDTO](ctx, r.Conn(), Resource, id)
}

func (r *Repository) Update(ctx context.Context, id int64, patch *crud.Patch) error {
	return crud.Update(ctx, r.Conn(), ticketsTable, id, patch, r.Now())
}
