// Package servicetest provides an in-memory board store for tests.
package servicetest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taskboard/backend/internal/model"
)

// Store mirrors the Postgres store's semantics: missing rows surface as
// pgx.ErrNoRows, duplicate emails and dangling references as the matching
// PgError codes, and deleting a parent cascades to its children.
type Store struct {
	mu       sync.Mutex
	seq      int
	order    map[string]int
	users    map[string]*model.User
	columns  map[string]*model.Column
	cards    map[string]*model.Card
	comments map[string]*model.Comment

	// Err, when set, is returned by every call.
	Err error
}

func NewStore() *Store {
	return &Store{
		order:    map[string]int{},
		users:    map[string]*model.User{},
		columns:  map[string]*model.Column{},
		cards:    map[string]*model.Card{},
		comments: map[string]*model.Comment{},
	}
}

func (s *Store) nextID() string {
	s.seq++
	id := uuid.NewString()
	s.order[id] = s.seq
	return id
}

func uniqueViolation() error {
	return &pgconn.PgError{Code: pgerrcode.UniqueViolation}
}

func foreignKeyViolation() error {
	return &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}
}

func (s *Store) CreateUser(_ context.Context, email, passwordHash string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, u := range s.users {
		if u.Email == email {
			return nil, uniqueViolation()
		}
	}
	now := time.Now()
	user := &model.User{ID: s.nextID(), Email: email, PasswordHash: passwordHash, CreatedAt: now, UpdatedAt: now}
	s.users[user.ID] = user
	cp := *user
	return &cp, nil
}

func (s *Store) GetUserByID(_ context.Context, id string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	user, ok := s.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *user
	return &cp, nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *Store) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := s.GetUserByEmail(ctx, email)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

func (s *Store) UpdateUserEmail(_ context.Context, id, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	user, ok := s.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	for _, u := range s.users {
		if u.Email == email && u.ID != id {
			return nil, uniqueViolation()
		}
	}
	user.Email = email
	user.UpdatedAt = time.Now()
	cp := *user
	return &cp, nil
}

func (s *Store) UpdateUserPassword(_ context.Context, id, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	user, ok := s.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.PasswordHash = passwordHash
	user.UpdatedAt = time.Now()
	return nil
}

func (s *Store) DeleteUser(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(s.users, id)
	for cid, c := range s.comments {
		if c.OwnerID == id {
			delete(s.comments, cid)
		}
	}
	for cid, c := range s.cards {
		if c.OwnerID == id {
			s.deleteCardLocked(cid)
		}
	}
	for cid, c := range s.columns {
		if c.OwnerID == id {
			s.deleteColumnLocked(cid)
		}
	}
	return nil
}

func (s *Store) CreateColumn(_ context.Context, ownerID, title string) (*model.Column, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if _, ok := s.users[ownerID]; !ok {
		return nil, foreignKeyViolation()
	}
	now := time.Now()
	column := &model.Column{ID: s.nextID(), Title: title, OwnerID: ownerID, CreatedAt: now, UpdatedAt: now}
	s.columns[column.ID] = column
	cp := *column
	return &cp, nil
}

func (s *Store) GetColumnByID(_ context.Context, id string) (*model.Column, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	column, ok := s.columns[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *column
	return &cp, nil
}

func (s *Store) GetColumnByOwnerAndID(ctx context.Context, ownerID, id string) (*model.Column, error) {
	column, err := s.GetColumnByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if column.OwnerID != ownerID {
		return nil, pgx.ErrNoRows
	}
	return column, nil
}

func (s *Store) ListColumnsByOwner(_ context.Context, ownerID string) ([]model.Column, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	columns := []model.Column{}
	for _, c := range s.columns {
		if c.OwnerID == ownerID {
			columns = append(columns, *c)
		}
	}
	sort.Slice(columns, func(i, j int) bool { return s.order[columns[i].ID] < s.order[columns[j].ID] })
	return columns, nil
}

func (s *Store) UpdateColumn(_ context.Context, id string, title *string) (*model.Column, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	column, ok := s.columns[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	if title != nil {
		column.Title = *title
	}
	column.UpdatedAt = time.Now()
	cp := *column
	return &cp, nil
}

func (s *Store) DeleteColumn(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.columns[id]; !ok {
		return pgx.ErrNoRows
	}
	s.deleteColumnLocked(id)
	return nil
}

func (s *Store) deleteColumnLocked(id string) {
	delete(s.columns, id)
	for cid, c := range s.cards {
		if c.ColumnID == id {
			s.deleteCardLocked(cid)
		}
	}
}

func (s *Store) CreateCard(_ context.Context, ownerID, columnID, title string, description *string) (*model.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if _, ok := s.columns[columnID]; !ok {
		return nil, foreignKeyViolation()
	}
	now := time.Now()
	card := &model.Card{
		ID:          s.nextID(),
		Title:       title,
		Description: description,
		OwnerID:     ownerID,
		ColumnID:    columnID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.cards[card.ID] = card
	cp := *card
	return &cp, nil
}

func (s *Store) GetCardByID(_ context.Context, id string) (*model.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	card, ok := s.cards[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *card
	return &cp, nil
}

func (s *Store) ListCardsByColumn(_ context.Context, columnID string) ([]model.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	cards := []model.Card{}
	for _, c := range s.cards {
		if c.ColumnID == columnID {
			cards = append(cards, *c)
		}
	}
	sort.Slice(cards, func(i, j int) bool { return s.order[cards[i].ID] < s.order[cards[j].ID] })
	return cards, nil
}

func (s *Store) UpdateCard(_ context.Context, id string, update model.CardUpdate) (*model.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	card, ok := s.cards[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	if update.ColumnID != nil {
		if _, ok := s.columns[*update.ColumnID]; !ok {
			return nil, foreignKeyViolation()
		}
		card.ColumnID = *update.ColumnID
	}
	if update.Title != nil {
		card.Title = *update.Title
	}
	if update.Description != nil {
		desc := *update.Description
		card.Description = &desc
	}
	card.UpdatedAt = time.Now()
	cp := *card
	return &cp, nil
}

func (s *Store) DeleteCard(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.cards[id]; !ok {
		return pgx.ErrNoRows
	}
	s.deleteCardLocked(id)
	return nil
}

func (s *Store) deleteCardLocked(id string) {
	delete(s.cards, id)
	for cid, c := range s.comments {
		if c.CardID == id {
			delete(s.comments, cid)
		}
	}
}

func (s *Store) CreateComment(_ context.Context, ownerID, cardID, text string) (*model.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if _, ok := s.cards[cardID]; !ok {
		return nil, foreignKeyViolation()
	}
	now := time.Now()
	comment := &model.Comment{ID: s.nextID(), Text: text, OwnerID: ownerID, CardID: cardID, CreatedAt: now, UpdatedAt: now}
	s.comments[comment.ID] = comment
	cp := *comment
	return &cp, nil
}

func (s *Store) GetCommentByID(_ context.Context, id string) (*model.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	comment, ok := s.comments[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *comment
	return &cp, nil
}

func (s *Store) ListCommentsByCard(_ context.Context, cardID string) ([]model.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	comments := []model.Comment{}
	for _, c := range s.comments {
		if c.CardID == cardID {
			comments = append(comments, *c)
		}
	}
	sort.Slice(comments, func(i, j int) bool { return s.order[comments[i].ID] < s.order[comments[j].ID] })
	return comments, nil
}

func (s *Store) UpdateComment(_ context.Context, id string, text *string) (*model.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	comment, ok := s.comments[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	if text != nil {
		comment.Text = *text
	}
	comment.UpdatedAt = time.Now()
	cp := *comment
	return &cp, nil
}

func (s *Store) DeleteComment(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.comments[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(s.comments, id)
	return nil
}

// PasswordHash returns the stored hash for id, or "" when the user is gone.
func (s *Store) PasswordHash(id string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user, ok := s.users[id]; ok {
		return user.PasswordHash
	}
	return ""
}

// TruncateAll empties the store.
func (s *Store) TruncateAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.users = map[string]*model.User{}
	s.columns = map[string]*model.Column{}
	s.cards = map[string]*model.Card{}
	s.comments = map[string]*model.Comment{}
	return nil
}
