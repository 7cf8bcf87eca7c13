package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/savorly/engine/internal/domain/achievement"
	"github.com/savorly/engine/internal/domain/recipe"
	"github.com/savorly/engine/internal/domain/user"
	"github.com/savorly/engine/internal/ports/outbound"
	"github.com/savorly/engine/pkg/errors"
)

// Store is the shared in-memory state behind the memory repositories and
// the engagement store. One Store backs one running engine.
type Store struct {
	mutex       sync.RWMutex
	users       map[uuid.UUID]*user.User
	recipes     map[uuid.UUID]*recipe.Recipe
	definitions map[string]achievement.Definition
	defOrder    []string
}

// NewStore creates an empty in-memory store
func NewStore() *Store {
	return &Store{
		users:       make(map[uuid.UUID]*user.User),
		recipes:     make(map[uuid.UUID]*recipe.Recipe),
		definitions: make(map[string]achievement.Definition),
	}
}

// SeedAchievements replaces the achievement catalog
func (s *Store) SeedAchievements(defs []achievement.Definition) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.definitions = make(map[string]achievement.Definition, len(defs))
	s.defOrder = s.defOrder[:0]
	for _, def := range defs {
		s.definitions[def.ID] = def
		s.defOrder = append(s.defOrder, def.ID)
	}
}

// UserRepository implements outbound.UserRepository over the store
type UserRepository struct {
	store *Store
}

// NewUserRepository creates a new in-memory user repository
func NewUserRepository(store *Store) outbound.UserRepository {
	return &UserRepository{store: store}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()

	r.store.users[u.ID()] = u
	return nil
}

// FindByID finds a user by ID. Callers get a snapshot of the aggregate;
// all writes to stored state go through the engagement store so they
// happen under the store mutex.
func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	r.store.mutex.RLock()
	defer r.store.mutex.RUnlock()

	u, ok := r.store.users[id]
	if !ok {
		return nil, errors.NewUserNotFoundError(id.String())
	}
	return u.Clone(), nil
}

// Exists checks if a user exists by ID
func (r *UserRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	r.store.mutex.RLock()
	defer r.store.mutex.RUnlock()

	_, ok := r.store.users[id]
	return ok, nil
}

// RecipeRepository implements outbound.RecipeRepository over the store
type RecipeRepository struct {
	store *Store
}

// NewRecipeRepository creates a new in-memory recipe repository
func NewRecipeRepository(store *Store) outbound.RecipeRepository {
	return &RecipeRepository{store: store}
}

// Create creates a new recipe
func (r *RecipeRepository) Create(ctx context.Context, rec *recipe.Recipe) error {
	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()

	r.store.recipes[rec.ID()] = rec
	return nil
}

// FindByID finds a recipe by ID
func (r *RecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	r.store.mutex.RLock()
	defer r.store.mutex.RUnlock()

	rec, ok := r.store.recipes[id]
	if !ok {
		return nil, errors.NewRecipeNotFoundError(id.String())
	}
	return rec, nil
}

// FindActiveExcluding returns active recipes not in the exclusion set,
// most popular first.
func (r *RecipeRepository) FindActiveExcluding(ctx context.Context, exclude []uuid.UUID, limit int) ([]*recipe.Recipe, error) {
	excluded := make(map[uuid.UUID]struct{}, len(exclude))
	for _, id := range exclude {
		excluded[id] = struct{}{}
	}

	r.store.mutex.RLock()
	matches := make([]*recipe.Recipe, 0, len(r.store.recipes))
	for _, rec := range r.store.recipes {
		if !rec.IsActive() {
			continue
		}
		if _, skip := excluded[rec.ID()]; skip {
			continue
		}
		matches = append(matches, rec)
	}
	r.store.mutex.RUnlock()

	sortByPopularity(matches)
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// FindSimilar returns active recipes sharing the cuisine, most popular
// first.
func (r *RecipeRepository) FindSimilar(ctx context.Context, cuisine recipe.CuisineType, excludeID uuid.UUID, limit int) ([]*recipe.Recipe, error) {
	r.store.mutex.RLock()
	matches := make([]*recipe.Recipe, 0)
	for _, rec := range r.store.recipes {
		if !rec.IsActive() || rec.ID() == excludeID || rec.Cuisine() != cuisine {
			continue
		}
		matches = append(matches, rec)
	}
	r.store.mutex.RUnlock()

	sortByPopularity(matches)
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

func sortByPopularity(recipes []*recipe.Recipe) {
	sort.SliceStable(recipes, func(i, j int) bool {
		return recipes[i].Popularity() > recipes[j].Popularity()
	})
}

// AchievementRepository implements outbound.AchievementRepository over
// the store
type AchievementRepository struct {
	store *Store
}

// NewAchievementRepository creates a new in-memory achievement repository
func NewAchievementRepository(store *Store) outbound.AchievementRepository {
	return &AchievementRepository{store: store}
}

// FindAll returns every achievement definition in catalog order
func (r *AchievementRepository) FindAll(ctx context.Context) ([]achievement.Definition, error) {
	r.store.mutex.RLock()
	defer r.store.mutex.RUnlock()

	defs := make([]achievement.Definition, 0, len(r.store.defOrder))
	for _, id := range r.store.defOrder {
		defs = append(defs, r.store.definitions[id])
	}
	return defs, nil
}

// FindByID returns one achievement definition
func (r *AchievementRepository) FindByID(ctx context.Context, id string) (achievement.Definition, error) {
	r.store.mutex.RLock()
	defer r.store.mutex.RUnlock()

	def, ok := r.store.definitions[id]
	if !ok {
		return achievement.Definition{}, errors.NewAchievementNotFoundError(id)
	}
	return def, nil
}

// EngagementStore implements outbound.EngagementStore over the store.
// The store mutex stands in for a database transaction.
type EngagementStore struct {
	store *Store
}

// NewEngagementStore creates a new in-memory engagement store
func NewEngagementStore(store *Store) outbound.EngagementStore {
	return &EngagementStore{store: store}
}

// ApplySwipe records the swipe on the user aggregate and applies the
// direction's side effects under one lock.
func (s *EngagementStore) ApplySwipe(ctx context.Context, userID, recipeID uuid.UUID, direction user.SwipeDirection) error {
	s.store.mutex.Lock()
	defer s.store.mutex.Unlock()

	u, ok := s.store.users[userID]
	if !ok {
		return errors.NewUserNotFoundError(userID.String())
	}
	rec, ok := s.store.recipes[recipeID]
	if !ok {
		return errors.NewRecipeNotFoundError(recipeID.String())
	}

	if err := u.RecordSwipe(recipeID, direction); err != nil {
		return err
	}
	if direction == user.SwipeRight {
		rec.RecordLike()
	}
	return nil
}

// UnlockAchievements marks the achievements unlocked on the aggregate
func (s *EngagementStore) UnlockAchievements(ctx context.Context, userID uuid.UUID, achievementIDs []string, unlockedAt time.Time) error {
	s.store.mutex.Lock()
	defer s.store.mutex.Unlock()

	u, ok := s.store.users[userID]
	if !ok {
		return errors.NewUserNotFoundError(userID.String())
	}
	for _, id := range achievementIDs {
		u.Unlock(id, unlockedAt)
	}
	return nil
}

// AppendMealEntry appends the meal record to the aggregate. Streak
// counters are recomputed by the aggregate itself when the entry lands,
// so the passed values are not re-applied here.
func (s *EngagementStore) AppendMealEntry(ctx context.Context, userID uuid.UUID, entry user.MealEntry, currentStreak, longestStreak int) error {
	s.store.mutex.Lock()
	defer s.store.mutex.Unlock()

	u, ok := s.store.users[userID]
	if !ok {
		return errors.NewUserNotFoundError(userID.String())
	}
	u.AppendMealEntry(entry)
	return nil
}
