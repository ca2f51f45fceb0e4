package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/internal/data/draftstore"
	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/internal/data/entity"
	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/internal/dto/response"
	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/internal/wizard"
	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/pkg/geo"
	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrSessionNotFound = errors.New("wizard session not found")

// ErrNoDraft is returned by Hydrate when the draft source holds nothing for
// the session.
var ErrNoDraft = errors.New("no stored draft for session")

type WizardService interface {
	CreateSession(ctx context.Context, draft []byte, step int) (*response.WizardStateResponse, error)
	GetState(ctx context.Context, sessionID string) (*response.WizardStateResponse, error)
	ApplyUpdate(ctx context.Context, sessionID string, patch entity.DraftPatch) (*response.WizardStateResponse, error)
	StoreDraft(ctx context.Context, sessionID string, payload []byte) error
	Hydrate(ctx context.Context, sessionID string) (*response.WizardStateResponse, error)
	Next(ctx context.Context, sessionID string) (*response.WizardStateResponse, error)
	Back(ctx context.Context, sessionID string) (*response.WizardStateResponse, error)
	GoTo(ctx context.Context, sessionID string, step int) (*response.WizardStateResponse, error)
	Reset(ctx context.Context, sessionID string) (*response.WizardStateResponse, error)
	Quote(ctx context.Context, sessionID string) (*response.QuoteResponse, error)

	// Draft hands the canonical draft to the booking flow.
	Draft(ctx context.Context, sessionID string) (entity.BookingDraft, error)
}

// session wraps one visitor's machine. The mutex serializes all access: one
// writer per draft, per the wizard's single-writer model.
type session struct {
	mu       sync.Mutex
	machine  *wizard.Machine
	lastSeen time.Time
}

type wizardService struct {
	mu       sync.RWMutex
	sessions map[string]*session

	drafts   draftstore.Store
	resolver geo.Resolver
	rates    wizard.Rates
	draftTTL time.Duration
	ttl      time.Duration
	log      *zap.Logger
}

func NewWizardService(drafts draftstore.Store, resolver geo.Resolver, config *utils.Config, log *zap.Logger) WizardService {
	s := &wizardService{
		sessions: make(map[string]*session),
		drafts:   drafts,
		resolver: resolver,
		rates:    RatesFromConfig(config.Pricing),
		draftTTL: time.Duration(config.Wizard.DraftTTLMinutes) * time.Minute,
		ttl:      time.Duration(config.Wizard.SessionTTLMinutes) * time.Minute,
		log:      log.With(zap.String("service", "wizard")),
	}
	go s.janitor()
	return s
}

// RatesFromConfig maps the configured rule table onto the pricing engine's
// rates. Airport keywords are fixed, not configurable.
func RatesFromConfig(cfg utils.PricingConfig) wizard.Rates {
	rates := wizard.DefaultRates()
	if cfg.Currency != "" {
		rates.Currency = cfg.Currency
	}
	if cfg.TaxRatePercent > 0 {
		rates.TaxRatePercent = cfg.TaxRatePercent
	}
	if cfg.AirportFee > 0 {
		rates.AirportFee = cfg.AirportFee
	}
	if cfg.MeetAndGreetFee > 0 {
		rates.MeetAndGreetFee = cfg.MeetAndGreetFee
	}
	if cfg.ChildSeatFee > 0 {
		rates.ChildSeatFee = cfg.ChildSeatFee
	}
	if cfg.ExtraStopFee > 0 {
		rates.ExtraStopFee = cfg.ExtraStopFee
	}
	if cfg.HourlyFallbackHours > 0 {
		rates.HourlyFallbackHours = cfg.HourlyFallbackHours
	}
	return rates
}

func (s *wizardService) CreateSession(ctx context.Context, draft []byte, step int) (*response.WizardStateResponse, error) {
	id := uuid.New().String()
	sess := &session{
		machine:  wizard.NewMachine(),
		lastSeen: time.Now(),
	}

	if len(draft) > 0 {
		if err := sess.machine.Hydrate(draft); err != nil {
			s.log.Warn("Create session with unparseable draft", zap.Error(err))
			return nil, err
		}
	}
	if step > 0 {
		sess.machine.GoTo(step)
	}

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	s.log.Info("Wizard session created",
		zap.String("session_id", id),
		zap.Bool("seeded", len(draft) > 0),
		zap.Int("step", sess.machine.Step()),
	)

	return stateResponse(id, sess.machine), nil
}

func (s *wizardService) GetState(ctx context.Context, sessionID string) (*response.WizardStateResponse, error) {
	return s.withSession(sessionID, func(m *wizard.Machine) error { return nil })
}

func (s *wizardService) ApplyUpdate(ctx context.Context, sessionID string, patch entity.DraftPatch) (*response.WizardStateResponse, error) {
	return s.withSession(sessionID, func(m *wizard.Machine) error {
		m.Apply(patch)
		return nil
	})
}

func (s *wizardService) StoreDraft(ctx context.Context, sessionID string, payload []byte) error {
	if _, err := s.lookup(sessionID); err != nil {
		return err
	}
	return s.drafts.Put(ctx, sessionID, payload, s.draftTTL)
}

// Hydrate pulls the stored draft payload, normalizes it against the current
// draft, and resets the wizard to step 0. The draft source is cleared only
// after a successful parse; a DraftParseError leaves it in place so the
// visitor can retry.
func (s *wizardService) Hydrate(ctx context.Context, sessionID string) (*response.WizardStateResponse, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	payload, err := s.drafts.Get(ctx, sessionID)
	if err == draftstore.ErrNotFound {
		return nil, ErrNoDraft
	}
	if err != nil {
		return nil, fmt.Errorf("read draft source: %w", err)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.lastSeen = time.Now()

	if err := sess.machine.Hydrate(payload); err != nil {
		s.log.Warn("Draft hydration failed, source kept for retry",
			zap.Error(err),
			zap.String("session_id", sessionID),
		)
		return nil, err
	}

	if err := s.drafts.Clear(ctx, sessionID); err != nil {
		// Hydration already succeeded; a stale source only costs a repeat
		// hydrate later.
		s.log.Warn("Failed to clear consumed draft", zap.Error(err), zap.String("session_id", sessionID))
	}

	s.log.Info("Wizard session hydrated", zap.String("session_id", sessionID))
	return stateResponse(sessionID, sess.machine), nil
}

func (s *wizardService) Next(ctx context.Context, sessionID string) (*response.WizardStateResponse, error) {
	return s.withSession(sessionID, func(m *wizard.Machine) error {
		m.Next()
		return nil
	})
}

func (s *wizardService) Back(ctx context.Context, sessionID string) (*response.WizardStateResponse, error) {
	return s.withSession(sessionID, func(m *wizard.Machine) error {
		m.Back()
		return nil
	})
}

func (s *wizardService) GoTo(ctx context.Context, sessionID string, step int) (*response.WizardStateResponse, error) {
	return s.withSession(sessionID, func(m *wizard.Machine) error {
		m.GoTo(step)
		return nil
	})
}

func (s *wizardService) Reset(ctx context.Context, sessionID string) (*response.WizardStateResponse, error) {
	return s.withSession(sessionID, func(m *wizard.Machine) error {
		m.Reset()
		return nil
	})
}

// Quote resolves the trip distance where applicable and prices the current
// draft. A failed distance lookup degrades to an unresolved distance instead
// of blocking the wizard; the charge simply stays at zero.
func (s *wizardService) Quote(ctx context.Context, sessionID string) (*response.QuoteResponse, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.lastSeen = time.Now()

	draft := sess.machine.Draft()

	var dist geo.Distance
	if draft.ServiceType != entity.ServiceHourly &&
		draft.Pickup.PlaceID != "" && draft.Dropoff.PlaceID != "" {
		resolved, err := s.resolver.Resolve(ctx, draft.Pickup.PlaceID, draft.Dropoff.PlaceID)
		if err != nil {
			s.log.Warn("Distance lookup failed, quoting without distance",
				zap.Error(err),
				zap.String("session_id", sessionID),
			)
		} else {
			dist = resolved
			sess.machine.Apply(entity.DraftPatch{
				DistanceKm:  &resolved.DistanceKm,
				DurationMin: &resolved.DurationMin,
			})
			draft = sess.machine.Draft()
		}
	}

	pricing := wizard.Price(draft, draft.DistanceKm, s.rates)
	sess.machine.Apply(entity.DraftPatch{Pricing: &pricing})

	return &response.QuoteResponse{
		DistanceKm:  dist.DistanceKm,
		DurationMin: dist.DurationMin,
		Pricing:     pricing,
	}, nil
}

func (s *wizardService) Draft(ctx context.Context, sessionID string) (entity.BookingDraft, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return entity.BookingDraft{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.lastSeen = time.Now()
	return sess.machine.Draft(), nil
}

func (s *wizardService) lookup(sessionID string) (*session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

func (s *wizardService) withSession(sessionID string, fn func(*wizard.Machine) error) (*response.WizardStateResponse, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.lastSeen = time.Now()

	if err := fn(sess.machine); err != nil {
		return nil, err
	}
	return stateResponse(sessionID, sess.machine), nil
}

// janitor evicts sessions idle beyond the configured TTL.
func (s *wizardService) janitor() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-s.ttl)
		var evicted int

		s.mu.Lock()
		for id, sess := range s.sessions {
			sess.mu.Lock()
			idle := sess.lastSeen.Before(cutoff)
			sess.mu.Unlock()
			if idle {
				delete(s.sessions, id)
				evicted++
			}
		}
		s.mu.Unlock()

		if evicted > 0 {
			s.log.Info("Expired wizard sessions evicted", zap.Int("count", evicted))
		}
	}
}

func stateResponse(id string, m *wizard.Machine) *response.WizardStateResponse {
	return &response.WizardStateResponse{
		SessionID:  id,
		Step:       m.Step(),
		CanAdvance: m.CanAdvance(),
		Draft:      m.Draft(),
	}
}
