package polls

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"votex/internal/models"
	"votex/internal/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service owns poll reads and writes on an injected storage handle.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

type CreateInput struct {
	Title       string
	Description string
	Visibility  string
	Password    string
	Options     []string
}

// Create validates the input, hashes the poll password for private polls and
// writes the poll together with its options in one transaction.
func (s *Service) Create(callerID uint, in CreateInput) (*models.Poll, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}

	options := make([]string, 0, len(in.Options))
	for _, o := range in.Options {
		if text := strings.TrimSpace(o); text != "" {
			options = append(options, text)
		}
	}
	if len(options) < 2 {
		return nil, fmt.Errorf("%w: at least 2 non-empty options required", ErrValidation)
	}

	visibility := in.Visibility
	if visibility == "" {
		visibility = models.VisibilityPublic
	}
	if visibility != models.VisibilityPublic && visibility != models.VisibilityPrivate {
		return nil, fmt.Errorf("%w: visibility must be public or private", ErrValidation)
	}

	var digest string
	if visibility == models.VisibilityPrivate {
		if in.Password == "" {
			return nil, fmt.Errorf("%w: private polls require a password", ErrValidation)
		}
		var err error
		digest, err = utils.HashPassword(in.Password)
		if err != nil {
			return nil, err
		}
	}

	poll := models.Poll{
		PublicID:       uuid.New(),
		UserID:         callerID,
		Title:          title,
		Description:    strings.TrimSpace(in.Description),
		Visibility:     visibility,
		PasswordDigest: digest,
	}
	for _, text := range options {
		poll.Options = append(poll.Options, models.PollOption{Text: text})
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&poll).Error
	}); err != nil {
		return nil, err
	}
	return &poll, nil
}

// PollSummary is a list entry: public polls plus the caller's own.
type PollSummary struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Visibility   string    `json:"visibility"`
	CreatorEmail string    `json:"creator_email"`
	Mine         bool      `json:"mine"`
	TotalVotes   int64     `json:"total_votes"`
	CreatedAt    time.Time `json:"created_at"`
}

// List returns public polls and the caller's own, newest first.
func (s *Service) List(callerID uint) ([]PollSummary, error) {
	var pollRows []models.Poll
	if err := s.db.Preload("User").
		Where("visibility = ? OR user_id = ?", models.VisibilityPublic, callerID).
		Order("created_at DESC").
		Find(&pollRows).Error; err != nil {
		return nil, err
	}

	counts, err := s.voteCounts(pollRows)
	if err != nil {
		return nil, err
	}

	summaries := make([]PollSummary, 0, len(pollRows))
	for _, p := range pollRows {
		summaries = append(summaries, PollSummary{
			ID:           p.PublicID,
			Title:        p.Title,
			Description:  p.Description,
			Visibility:   p.Visibility,
			CreatorEmail: p.User.Email,
			Mine:         p.IsOwner(callerID),
			TotalVotes:   counts[p.ID],
			CreatedAt:    p.CreatedAt,
		})
	}
	return summaries, nil
}

// voteCounts batch-counts votes for a set of polls.
func (s *Service) voteCounts(pollRows []models.Poll) (map[uint]int64, error) {
	countMap := make(map[uint]int64)
	if len(pollRows) == 0 {
		return countMap, nil
	}

	pollIDs := make([]uint, len(pollRows))
	for i, p := range pollRows {
		pollIDs[i] = p.ID
	}

	type countResult struct {
		PollID uint
		Count  int64
	}
	var results []countResult
	if err := s.db.Model(&models.Vote{}).
		Select("poll_id, COUNT(*) as count").
		Where("poll_id IN ?", pollIDs).
		Group("poll_id").
		Scan(&results).Error; err != nil {
		return nil, err
	}

	for _, r := range results {
		countMap[r.PollID] = r.Count
	}
	return countMap, nil
}

// OptionView hides the tally until the caller has voted.
type OptionView struct {
	ID        uint   `json:"id"`
	Text      string `json:"text"`
	VoteCount *int   `json:"vote_count,omitempty"`
}

type PollView struct {
	ID               uuid.UUID    `json:"id"`
	Title            string       `json:"title"`
	Description      string       `json:"description"`
	DescriptionHTML  string       `json:"description_html,omitempty"`
	Visibility       string       `json:"visibility"`
	CreatorEmail     string       `json:"creator_email"`
	Mine             bool         `json:"mine"`
	CreatedAt        time.Time    `json:"created_at"`
	RequiresPassword bool         `json:"requires_password"`
	Options          []OptionView `json:"options,omitempty"`
	HasVoted         bool         `json:"has_voted"`
	VotedOptionID    *uint        `json:"voted_option_id,omitempty"`
}

// GetView assembles the poll for presentation in a single read/decision pass:
// password verification and ballot shaping happen here, so there is no window
// between a separate verify call and the read it was meant to guard.
//
// Locked private polls return metadata with RequiresPassword set. Tallies are
// withheld until the caller has voted; this holds for owners too.
func (s *Service) GetView(publicID uuid.UUID, callerID uint, password string) (*PollView, error) {
	poll, err := s.loadPoll(publicID, true)
	if err != nil {
		return nil, err
	}

	view := &PollView{
		ID:           poll.PublicID,
		Title:        poll.Title,
		Description:  poll.Description,
		Visibility:   poll.Visibility,
		CreatorEmail: poll.User.Email,
		Mine:         poll.IsOwner(callerID),
		CreatedAt:    poll.CreatedAt,
	}
	if poll.Description != "" {
		view.DescriptionHTML = utils.RenderMarkdown(poll.Description)
	}

	if err := Authorize(poll, callerID, password); err != nil {
		if errors.Is(err, ErrPasswordRequired) {
			view.RequiresPassword = true
			return view, nil
		}
		return nil, err
	}

	var vote models.Vote
	hasVoted := true
	if err := s.db.Where("poll_id = ? AND user_id = ?", poll.ID, callerID).
		First(&vote).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		hasVoted = false
	}

	view.HasVoted = hasVoted
	for _, opt := range poll.Options {
		ov := OptionView{ID: opt.ID, Text: opt.Text}
		if hasVoted {
			count := opt.VoteCount
			ov.VoteCount = &count
		}
		view.Options = append(view.Options, ov)
	}
	if hasVoted {
		optionID := vote.OptionID
		view.VotedOptionID = &optionID
	}
	return view, nil
}

// VerifyPassword checks a password against a private poll's digest. Public
// and absent polls both report NotFound, matching the lookup shape.
func (s *Service) VerifyPassword(publicID uuid.UUID, password string) (bool, error) {
	var poll models.Poll
	err := s.db.
		Where("public_id = ? AND visibility = ?", publicID, models.VisibilityPrivate).
		First(&poll).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, ErrNotFound
	}
	if err != nil {
		return false, err
	}
	return utils.CheckPasswordHash(password, poll.PasswordDigest), nil
}

// CastVote records callerID's vote. The vote insert and the tally increment
// are one transaction: either both land or neither does. The composite unique
// index on (poll_id, user_id) arbitrates concurrent casts, so at most one of
// any number of racing calls succeeds.
func (s *Service) CastVote(publicID uuid.UUID, callerID uint, optionID uint, password string) error {
	poll, err := s.loadPoll(publicID, false)
	if err != nil {
		return err
	}
	if err := Authorize(poll, callerID, password); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var option models.PollOption
		if err := tx.Where("id = ? AND poll_id = ?", optionID, poll.ID).
			First(&option).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidOption
			}
			return err
		}

		var existing models.Vote
		err := tx.Where("poll_id = ? AND user_id = ?", poll.ID, callerID).
			First(&existing).Error
		if err == nil {
			return ErrAlreadyVoted
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		vote := models.Vote{PollID: poll.ID, UserID: callerID, OptionID: option.ID}
		if err := tx.Create(&vote).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyVoted
			}
			return err
		}

		return tx.Model(&models.PollOption{}).
			Where("id = ?", option.ID).
			UpdateColumn("vote_count", gorm.Expr("vote_count + ?", 1)).
			Error
	})
}

// Delete removes a poll with its options and votes. Owner only; non-owners
// get Forbidden on public polls but NotFound on private ones, so denial does
// not reveal a private poll's existence.
func (s *Service) Delete(publicID uuid.UUID, callerID uint) error {
	poll, err := s.loadPoll(publicID, false)
	if err != nil {
		return err
	}
	if !poll.IsOwner(callerID) {
		if poll.IsPublic() {
			return ErrForbidden
		}
		return ErrNotFound
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("poll_id = ?", poll.ID).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("poll_id = ?", poll.ID).Delete(&models.PollOption{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Poll{}, poll.ID).Error
	})
}

func (s *Service) loadPoll(publicID uuid.UUID, full bool) (*models.Poll, error) {
	q := s.db
	if full {
		q = q.Preload("User").Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("poll_options.id ASC")
		})
	}

	var poll models.Poll
	if err := q.Where("public_id = ?", publicID).First(&poll).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &poll, nil
}
