package services

import (
	"context"
	"sort"
	"testing"

	"craftfolio/internal/common"
	"craftfolio/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type CategoryOrderingTestSuite struct {
	suite.Suite
	mockCategoryRepo *MockCategoryRepository
	ordering         CategoryOrdering
}

func (suite *CategoryOrderingTestSuite) SetupTest() {
	suite.mockCategoryRepo = &MockCategoryRepository{}
	suite.ordering = NewCategoryOrdering(suite.mockCategoryRepo)
}

func (suite *CategoryOrderingTestSuite) TearDownTest() {
	suite.mockCategoryRepo.AssertExpectations(suite.T())
}

func TestCategoryOrderingTestSuite(t *testing.T) {
	suite.Run(t, new(CategoryOrderingTestSuite))
}

func (suite *CategoryOrderingTestSuite) TestAppend_AssignsNextRank() {
	category := &models.Category{ID: uuid.New(), Name: "Woodwork"}

	suite.mockCategoryRepo.On("Count", mock.Anything).Return(3, nil).Once()
	suite.mockCategoryRepo.On("Create", mock.Anything, category).Return(nil).Once()

	err := suite.ordering.Append(context.Background(), category)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 4, category.SortOrder)
}

func (suite *CategoryOrderingTestSuite) TestAppend_FirstCategoryGetsRankOne() {
	category := &models.Category{ID: uuid.New(), Name: "Ceramics"}

	suite.mockCategoryRepo.On("Count", mock.Anything).Return(0, nil).Once()
	suite.mockCategoryRepo.On("Create", mock.Anything, category).Return(nil).Once()

	err := suite.ordering.Append(context.Background(), category)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, category.SortOrder)
}

func (suite *CategoryOrderingTestSuite) TestMove_UpTransposesWithNeighbor() {
	moved := &models.Category{ID: uuid.New(), Name: "B", SortOrder: 2}
	neighbor := &models.Category{ID: uuid.New(), Name: "A", SortOrder: 1}

	suite.mockCategoryRepo.On("GetByID", mock.Anything, moved.ID).Return(moved, nil).Once()
	suite.mockCategoryRepo.On("Count", mock.Anything).Return(3, nil).Once()
	suite.mockCategoryRepo.On("ListSortOrderBetween", mock.Anything, 1, 1).
		Return([]*models.Category{neighbor}, nil).Once()
	suite.mockCategoryRepo.On("UpdateSortOrder", mock.Anything, neighbor.ID, 2).Return(nil).Once()
	suite.mockCategoryRepo.On("UpdateSortOrder", mock.Anything, moved.ID, 1).Return(nil).Once()

	result, err := suite.ordering.Move(context.Background(), moved.ID, models.MoveUp)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, result.SortOrder)
}

func (suite *CategoryOrderingTestSuite) TestMove_DownTransposesWithNeighbor() {
	moved := &models.Category{ID: uuid.New(), Name: "B", SortOrder: 2}
	neighbor := &models.Category{ID: uuid.New(), Name: "C", SortOrder: 3}

	suite.mockCategoryRepo.On("GetByID", mock.Anything, moved.ID).Return(moved, nil).Once()
	suite.mockCategoryRepo.On("Count", mock.Anything).Return(3, nil).Once()
	suite.mockCategoryRepo.On("ListSortOrderBetween", mock.Anything, 3, 3).
		Return([]*models.Category{neighbor}, nil).Once()
	suite.mockCategoryRepo.On("UpdateSortOrder", mock.Anything, neighbor.ID, 2).Return(nil).Once()
	suite.mockCategoryRepo.On("UpdateSortOrder", mock.Anything, moved.ID, 3).Return(nil).Once()

	result, err := suite.ordering.Move(context.Background(), moved.ID, models.MoveDown)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 3, result.SortOrder)
}

func (suite *CategoryOrderingTestSuite) TestMove_UpFromFirstPositionRejected() {
	first := &models.Category{ID: uuid.New(), Name: "A", SortOrder: 1}

	suite.mockCategoryRepo.On("GetByID", mock.Anything, first.ID).Return(first, nil).Once()
	suite.mockCategoryRepo.On("Count", mock.Anything).Return(3, nil).Once()

	_, err := suite.ordering.Move(context.Background(), first.ID, models.MoveUp)

	assert.ErrorIs(suite.T(), err, common.ErrInvalidMove)
	suite.mockCategoryRepo.AssertNotCalled(suite.T(), "UpdateSortOrder",
		mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CategoryOrderingTestSuite) TestMove_DownFromLastPositionRejected() {
	last := &models.Category{ID: uuid.New(), Name: "C", SortOrder: 3}

	suite.mockCategoryRepo.On("GetByID", mock.Anything, last.ID).Return(last, nil).Once()
	suite.mockCategoryRepo.On("Count", mock.Anything).Return(3, nil).Once()

	_, err := suite.ordering.Move(context.Background(), last.ID, models.MoveDown)

	assert.ErrorIs(suite.T(), err, common.ErrInvalidMove)
	suite.mockCategoryRepo.AssertNotCalled(suite.T(), "UpdateSortOrder",
		mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CategoryOrderingTestSuite) TestMove_SoleCategoryCannotMove() {
	only := &models.Category{ID: uuid.New(), Name: "A", SortOrder: 1}

	suite.mockCategoryRepo.On("GetByID", mock.Anything, only.ID).Return(only, nil).Twice()
	suite.mockCategoryRepo.On("Count", mock.Anything).Return(1, nil).Twice()

	_, err := suite.ordering.Move(context.Background(), only.ID, models.MoveUp)
	assert.ErrorIs(suite.T(), err, common.ErrInvalidMove)

	_, err = suite.ordering.Move(context.Background(), only.ID, models.MoveDown)
	assert.ErrorIs(suite.T(), err, common.ErrInvalidMove)
}

func (suite *CategoryOrderingTestSuite) TestMove_InvalidDirectionRejected() {
	_, err := suite.ordering.Move(context.Background(), uuid.New(), models.MoveDirection("sideways"))

	assert.ErrorIs(suite.T(), err, common.ErrValidation)
	suite.mockCategoryRepo.AssertNotCalled(suite.T(), "GetByID", mock.Anything, mock.Anything)
}

func (suite *CategoryOrderingTestSuite) TestMove_UnknownCategory() {
	id := uuid.New()

	suite.mockCategoryRepo.On("GetByID", mock.Anything, id).
		Return(nil, common.ErrNotFound).Once()

	_, err := suite.ordering.Move(context.Background(), id, models.MoveUp)

	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
}

// memCategoryRepo is an in-memory CategoryRepository for sequence tests
// where mock expectations would obscure the ordering invariant.
type memCategoryRepo struct {
	categories map[uuid.UUID]*models.Category
}

func newMemCategoryRepo() *memCategoryRepo {
	return &memCategoryRepo{categories: make(map[uuid.UUID]*models.Category)}
}

func (r *memCategoryRepo) Create(_ context.Context, category *models.Category) error {
	clone := *category
	r.categories[category.ID] = &clone
	return nil
}

func (r *memCategoryRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Category, error) {
	category, ok := r.categories[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	clone := *category
	return &clone, nil
}

func (r *memCategoryRepo) Update(_ context.Context, category *models.Category) error {
	clone := *category
	r.categories[category.ID] = &clone
	return nil
}

func (r *memCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.categories, id)
	return nil
}

func (r *memCategoryRepo) List(_ context.Context) ([]*models.Category, error) {
	out := make([]*models.Category, 0, len(r.categories))
	for _, category := range r.categories {
		clone := *category
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (r *memCategoryRepo) Count(_ context.Context) (int, error) {
	return len(r.categories), nil
}

func (r *memCategoryRepo) ListSortOrderBetween(_ context.Context, lo, hi int) ([]*models.Category, error) {
	var out []*models.Category
	for _, category := range r.categories {
		if category.SortOrder >= lo && category.SortOrder <= hi {
			clone := *category
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (r *memCategoryRepo) UpdateSortOrder(_ context.Context, id uuid.UUID, sortOrder int) error {
	category, ok := r.categories[id]
	if !ok {
		return common.ErrNotFound
	}
	category.SortOrder = sortOrder
	return nil
}

// TestOrdering_MoveSequenceKeepsRanksDense appends A, B, C and walks them
// through a series of moves, asserting after each step that the rank
// multiset stays exactly {1..N} and the display order matches.
func TestOrdering_MoveSequenceKeepsRanksDense(t *testing.T) {
	ctx := context.Background()
	repo := newMemCategoryRepo()
	ordering := NewCategoryOrdering(repo)

	ids := make(map[string]uuid.UUID)
	for _, name := range []string{"A", "B", "C"} {
		category := &models.Category{ID: uuid.New(), Name: name}
		assert.NoError(t, ordering.Append(ctx, category))
		ids[name] = category.ID
	}

	assertOrder := func(names ...string) {
		t.Helper()
		listed, err := repo.List(ctx)
		assert.NoError(t, err)
		assert.Len(t, listed, len(names))
		for i, name := range names {
			assert.Equal(t, name, listed[i].Name)
			assert.Equal(t, i+1, listed[i].SortOrder)
		}
	}

	assertOrder("A", "B", "C")

	// C: 3 -> 2, displacing B
	_, err := ordering.Move(ctx, ids["C"], models.MoveUp)
	assert.NoError(t, err)
	assertOrder("A", "C", "B")

	// A: 1 -> 2, displacing C
	_, err = ordering.Move(ctx, ids["A"], models.MoveDown)
	assert.NoError(t, err)
	assertOrder("C", "A", "B")

	// B cannot leave the bottom
	_, err = ordering.Move(ctx, ids["B"], models.MoveDown)
	assert.ErrorIs(t, err, common.ErrInvalidMove)
	assertOrder("C", "A", "B")

	// Up and back down is the identity
	_, err = ordering.Move(ctx, ids["A"], models.MoveUp)
	assert.NoError(t, err)
	_, err = ordering.Move(ctx, ids["C"], models.MoveUp)
	assert.NoError(t, err)
	assertOrder("C", "A", "B")
}
