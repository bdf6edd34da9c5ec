package customers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dilshanuk/salespoint/internal/domain/models"
)

// fakeCustomerStore is an in-memory CustomerStore with a unique telephone
// constraint, matching the mongo-backed one.
type fakeCustomerStore struct {
	customers map[string]*models.Customer
}

func newFakeCustomerStore() *fakeCustomerStore {
	return &fakeCustomerStore{customers: make(map[string]*models.Customer)}
}

func (f *fakeCustomerStore) GetByID(_ context.Context, id string) (*models.Customer, error) {
	customer, ok := f.customers[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	copied := *customer
	return &copied, nil
}

func (f *fakeCustomerStore) List(_ context.Context, addedBy string) ([]models.Customer, error) {
	result := []models.Customer{}
	for _, customer := range f.customers {
		if addedBy != "" && customer.AddedBy.Hex() != addedBy {
			continue
		}
		result = append(result, *customer)
	}
	return result, nil
}

func (f *fakeCustomerStore) Insert(_ context.Context, customer *models.Customer) error {
	for _, existing := range f.customers {
		if existing.Telephone == customer.Telephone {
			return &models.DuplicateError{Message: "customer with this telephone number already exists"}
		}
	}
	if customer.ID.IsZero() {
		customer.ID = primitive.NewObjectID()
	}
	copied := *customer
	f.customers[customer.ID.Hex()] = &copied
	return nil
}

func (f *fakeCustomerStore) Update(_ context.Context, id string, update models.CustomerUpdate) (*models.Customer, error) {
	customer, ok := f.customers[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	if update.Name != nil {
		customer.Name = *update.Name
	}
	if update.Route != nil {
		customer.Route = *update.Route
	}
	if update.Telephone != nil {
		customer.Telephone = *update.Telephone
	}
	if update.CreditLimit != nil {
		customer.CreditLimit = *update.CreditLimit
	}
	if update.CurrentCredits != nil {
		customer.CurrentCredits = *update.CurrentCredits
	}
	copied := *customer
	return &copied, nil
}

func (f *fakeCustomerStore) Delete(_ context.Context, id string) error {
	if _, ok := f.customers[id]; !ok {
		return models.ErrNotFound
	}
	delete(f.customers, id)
	return nil
}

func representative() models.Principal {
	return models.Principal{ID: primitive.NewObjectID().Hex(), Role: models.RoleRepresentative}
}

func admin() models.Principal {
	return models.Principal{ID: primitive.NewObjectID().Hex(), Role: models.RoleAdmin}
}

func TestCreate(t *testing.T) {
	svc := NewService(newFakeCustomerStore(), nil)
	actor := representative()

	customer, err := svc.Create(context.Background(), actor, CreateInput{
		Name:        "Kamal Stores",
		Route:       "Galle Road",
		Telephone:   "0771234567",
		CreditLimit: 50000,
	})

	require.NoError(t, err)
	assert.Equal(t, actor.ID, customer.AddedBy.Hex())
	assert.Zero(t, customer.CurrentCredits, "new customers start without outstanding credit")
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(newFakeCustomerStore(), nil)
	var validationErr *models.ValidationError

	_, err := svc.Create(context.Background(), representative(), CreateInput{Telephone: "0771234567"})
	assert.ErrorAs(t, err, &validationErr)

	_, err = svc.Create(context.Background(), representative(), CreateInput{Name: "Kamal Stores"})
	assert.ErrorAs(t, err, &validationErr)
}

func TestCreateDuplicateTelephone(t *testing.T) {
	svc := NewService(newFakeCustomerStore(), nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, representative(), CreateInput{Name: "Kamal Stores", Telephone: "0771234567"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, representative(), CreateInput{Name: "Nimal Traders", Telephone: "0771234567"})
	var dupErr *models.DuplicateError
	assert.ErrorAs(t, err, &dupErr)
}

func TestListScopedByOwner(t *testing.T) {
	store := newFakeCustomerStore()
	svc := NewService(store, nil)
	ctx := context.Background()
	first := representative()
	second := representative()

	_, err := svc.Create(ctx, first, CreateInput{Name: "Kamal Stores", Telephone: "0771111111"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, second, CreateInput{Name: "Nimal Traders", Telephone: "0772222222"})
	require.NoError(t, err)

	mine, err := svc.List(ctx, first)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Kamal Stores", mine[0].Name)

	all, err := svc.List(ctx, admin())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestGetOwnership(t *testing.T) {
	svc := NewService(newFakeCustomerStore(), nil)
	ctx := context.Background()
	owner := representative()

	customer, err := svc.Create(ctx, owner, CreateInput{Name: "Kamal Stores", Telephone: "0771234567"})
	require.NoError(t, err)

	_, err = svc.Get(ctx, representative(), customer.ID.Hex())
	assert.ErrorIs(t, err, models.ErrForbidden)

	got, err := svc.Get(ctx, owner, customer.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, customer.ID, got.ID)

	_, err = svc.Get(ctx, admin(), customer.ID.Hex())
	assert.NoError(t, err)
}

func TestUpdateCreditsAdminOnly(t *testing.T) {
	svc := NewService(newFakeCustomerStore(), nil)
	ctx := context.Background()
	owner := representative()

	customer, err := svc.Create(ctx, owner, CreateInput{Name: "Kamal Stores", Telephone: "0771234567"})
	require.NoError(t, err)

	credits := 1500.0
	updated, err := svc.Update(ctx, owner, customer.ID.Hex(), models.CustomerUpdate{CurrentCredits: &credits})
	require.NoError(t, err)
	assert.Zero(t, updated.CurrentCredits, "representatives cannot set outstanding credit")

	updated, err = svc.Update(ctx, admin(), customer.ID.Hex(), models.CustomerUpdate{CurrentCredits: &credits})
	require.NoError(t, err)
	assert.Equal(t, 1500.0, updated.CurrentCredits)
}

func TestUpdateOwnership(t *testing.T) {
	svc := NewService(newFakeCustomerStore(), nil)
	ctx := context.Background()
	owner := representative()

	customer, err := svc.Create(ctx, owner, CreateInput{Name: "Kamal Stores", Telephone: "0771234567"})
	require.NoError(t, err)

	name := "Renamed"
	_, err = svc.Update(ctx, representative(), customer.ID.Hex(), models.CustomerUpdate{Name: &name})
	assert.ErrorIs(t, err, models.ErrForbidden)

	empty := "  "
	_, err = svc.Update(ctx, owner, customer.ID.Hex(), models.CustomerUpdate{Name: &empty})
	var validationErr *models.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestDeleteAdminOnly(t *testing.T) {
	store := newFakeCustomerStore()
	svc := NewService(store, nil)
	ctx := context.Background()
	owner := representative()

	customer, err := svc.Create(ctx, owner, CreateInput{Name: "Kamal Stores", Telephone: "0771234567"})
	require.NoError(t, err)

	err = svc.Delete(ctx, owner, customer.ID.Hex())
	assert.ErrorIs(t, err, models.ErrForbidden)

	require.NoError(t, svc.Delete(ctx, admin(), customer.ID.Hex()))

	_, err = store.GetByID(ctx, customer.ID.Hex())
	assert.ErrorIs(t, err, models.ErrNotFound)
}
