// Package tracker is the data access layer the handlers call. It validates
// input, keeps the contact invariant, talks to the record store and
// announces every committed mutation on the change feed.
package tracker

import (
	"context"
	"strings"

	"github.com/dalemusser/interno/internal/app/store/recordstore"
	"github.com/dalemusser/interno/internal/app/system/apperr"
	"github.com/dalemusser/interno/internal/app/system/changefeed"
	"github.com/dalemusser/interno/internal/app/system/inputval"
	"github.com/dalemusser/interno/internal/app/system/trackerview"
	"github.com/dalemusser/interno/internal/domain/models"
	"go.uber.org/zap"
)

// Service implements the tracker operations over one record-store backend.
type Service struct {
	internships recordstore.Internships
	regions     recordstore.Regions
	hub         changefeed.Hub
	log         *zap.Logger
}

// New builds a Service. hub may be nil, in which case nothing is published.
func New(b recordstore.Backend, hub changefeed.Hub, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		internships: b.Internships,
		regions:     b.Regions,
		hub:         hub,
		log:         logger,
	}
}

// InternshipInput is what the create form submits.
type InternshipInput struct {
	Name         string
	IndustryType string
	Address      string
	RegionID     string
	Status       string
	Priority     string
	Notes        string
	Contacts     []models.Contact
}

type internshipRules struct {
	Name     string         `validate:"required,max=200" label:"Company name"`
	Address  string         `validate:"max=500" label:"Address"`
	Notes    string         `validate:"max=5000" label:"Notes"`
	Contacts []contactRules `validate:"dive"`
}

type contactRules struct {
	Name     string `validate:"max=200" label:"Contact name"`
	Position string `validate:"max=200" label:"Contact position"`
	Email    string `validate:"loose_email" label:"Contact email"`
}

func contactRulesFor(cs []models.Contact) []contactRules {
	out := make([]contactRules, 0, len(cs))
	for _, c := range cs {
		out = append(out, contactRules{Name: c.Name, Position: c.Position, Email: strings.TrimSpace(c.Email)})
	}
	return out
}

// trimContacts trims each field, then drops blank entries. Text is otherwise
// stored as entered; templates escape it on output.
func trimContacts(cs []models.Contact) []models.Contact {
	out := make([]models.Contact, 0, len(cs))
	for _, c := range cs {
		out = append(out, models.Contact{
			Name:     strings.TrimSpace(c.Name),
			Position: strings.TrimSpace(c.Position),
			Email:    strings.TrimSpace(c.Email),
		})
	}
	return models.CleanContacts(out)
}

func validateEnums(industry, status, priority string) error {
	if industry != "" && !models.ValidIndustry(industry) {
		return apperr.Validation("industry_type", "Please choose a valid industry.")
	}
	if status != "" && !models.ValidStatus(status) {
		return apperr.Validation("status", "Please choose a valid status.")
	}
	if priority != "" && !models.ValidPriority(priority) {
		return apperr.Validation("priority", "Please choose a valid priority.")
	}
	return nil
}

func firstError(res inputval.Result) error {
	if !res.HasErrors() {
		return nil
	}
	fe := res.Errors[0]
	return apperr.Validation(fe.Field, fe.Message)
}

// ListInternships returns every record, newest first.
func (s *Service) ListInternships(ctx context.Context) ([]models.HydratedInternship, error) {
	recs, err := s.internships.List(ctx)
	if err != nil {
		return nil, apperr.Persistence("list internships", err)
	}
	return recs, nil
}

// ListInternshipsGrouped returns every record grouped by region name.
func (s *Service) ListInternshipsGrouped(ctx context.Context) (trackerview.Groups, error) {
	recs, err := s.ListInternships(ctx)
	if err != nil {
		return nil, err
	}
	return trackerview.Group(recs), nil
}

// GetInternship loads one record.
func (s *Service) GetInternship(ctx context.Context, id string) (models.HydratedInternship, error) {
	rec, err := s.internships.Get(ctx, id)
	if err != nil {
		return models.HydratedInternship{}, apperr.Persistence("load internship", err)
	}
	return rec, nil
}

// CreateInternship validates in, fills defaults and stores it.
func (s *Service) CreateInternship(ctx context.Context, in InternshipInput) (models.HydratedInternship, error) {
	stored := models.StoredInternship{
		Name:         strings.TrimSpace(in.Name),
		IndustryType: strings.TrimSpace(in.IndustryType),
		Address:      strings.TrimSpace(in.Address),
		RegionID:     strings.TrimSpace(in.RegionID),
		Status:       strings.TrimSpace(in.Status),
		Priority:     strings.TrimSpace(in.Priority),
		Notes:        strings.TrimSpace(in.Notes),
		Contacts:     trimContacts(in.Contacts),
	}

	if err := firstError(inputval.Validate(internshipRules{
		Name:     stored.Name,
		Address:  stored.Address,
		Notes:    stored.Notes,
		Contacts: contactRulesFor(stored.Contacts),
	})); err != nil {
		return models.HydratedInternship{}, err
	}
	if err := validateEnums(stored.IndustryType, stored.Status, stored.Priority); err != nil {
		return models.HydratedInternship{}, err
	}

	if stored.IndustryType == "" {
		stored.IndustryType = models.DefaultIndustry
	}
	if stored.Status == "" {
		stored.Status = models.DefaultStatus
	}
	if stored.Priority == "" {
		stored.Priority = models.DefaultPriority
	}

	rec, err := s.internships.Create(ctx, stored)
	if err != nil {
		return models.HydratedInternship{}, apperr.Persistence("create internship", err)
	}
	s.publish(ctx, changefeed.TableInternships, changefeed.OpInsert, rec.ID)
	return rec, nil
}

// UpdateInternship applies the non-nil fields of patch.
func (s *Service) UpdateInternship(ctx context.Context, id string, patch models.InternshipPatch) (models.HydratedInternship, error) {
	p, err := normalizePatch(patch)
	if err != nil {
		return models.HydratedInternship{}, err
	}
	if p.IsEmpty() {
		return s.GetInternship(ctx, id)
	}

	rec, err := s.internships.Update(ctx, id, p)
	if err != nil {
		return models.HydratedInternship{}, apperr.Persistence("update internship", err)
	}
	s.publish(ctx, changefeed.TableInternships, changefeed.OpUpdate, rec.ID)
	return rec, nil
}

func normalizePatch(patch models.InternshipPatch) (models.InternshipPatch, error) {
	p := patch
	rules := internshipRules{Name: "x"}

	if p.Name != nil {
		v := strings.TrimSpace(*p.Name)
		p.Name = &v
		rules.Name = v
	}
	if p.Address != nil {
		v := strings.TrimSpace(*p.Address)
		p.Address = &v
		rules.Address = v
	}
	if p.Notes != nil {
		v := strings.TrimSpace(*p.Notes)
		p.Notes = &v
		rules.Notes = v
	}
	if p.RegionID != nil {
		v := strings.TrimSpace(*p.RegionID)
		p.RegionID = &v
	}
	if p.Contacts != nil {
		v := trimContacts(*p.Contacts)
		p.Contacts = &v
		rules.Contacts = contactRulesFor(v)
	}

	if err := firstError(inputval.Validate(rules)); err != nil {
		return p, err
	}

	var industry, status, priority string
	if p.IndustryType != nil {
		v := strings.TrimSpace(*p.IndustryType)
		p.IndustryType = &v
		industry = v
		if v == "" {
			return p, apperr.Validation("industry_type", "Please choose a valid industry.")
		}
	}
	if p.Status != nil {
		v := strings.TrimSpace(*p.Status)
		p.Status = &v
		status = v
		if v == "" {
			return p, apperr.Validation("status", "Please choose a valid status.")
		}
	}
	if p.Priority != nil {
		v := strings.TrimSpace(*p.Priority)
		p.Priority = &v
		priority = v
		if v == "" {
			return p, apperr.Validation("priority", "Please choose a valid priority.")
		}
	}
	return p, validateEnums(industry, status, priority)
}

// DeleteInternship removes one record.
func (s *Service) DeleteInternship(ctx context.Context, id string) error {
	if err := s.internships.Delete(ctx, id); err != nil {
		return apperr.Persistence("delete internship", err)
	}
	s.publish(ctx, changefeed.TableInternships, changefeed.OpDelete, id)
	return nil
}

// UpdateStatus is the quick action from the row menu.
func (s *Service) UpdateStatus(ctx context.Context, id, status string) (models.HydratedInternship, error) {
	return s.UpdateInternship(ctx, id, models.InternshipPatch{Status: &status})
}

// UpdatePriority sets only the priority.
func (s *Service) UpdatePriority(ctx context.Context, id, priority string) (models.HydratedInternship, error) {
	return s.UpdateInternship(ctx, id, models.InternshipPatch{Priority: &priority})
}

// UpdateNotes replaces the notes. An empty string clears them.
func (s *Service) UpdateNotes(ctx context.Context, id, notes string) (models.HydratedInternship, error) {
	return s.UpdateInternship(ctx, id, models.InternshipPatch{Notes: &notes})
}

// publish announces a committed write. Failures are logged only: the write
// already succeeded and open pages still refresh on their next poll.
func (s *Service) publish(ctx context.Context, table, op, id string) {
	if s.hub == nil {
		return
	}
	ev := changefeed.NewEvent(table, op, id)
	if err := s.hub.Publish(context.WithoutCancel(ctx), ev); err != nil {
		s.log.Warn("publish change event failed",
			zap.String("table", table),
			zap.String("op", op),
			zap.String("record_id", id),
			zap.Error(err))
	}
}
