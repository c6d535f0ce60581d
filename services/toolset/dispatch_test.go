package toolset

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imovelmatch/models"
	"imovelmatch/services/search"
	"imovelmatch/services/slots"
)

type fakeSearch struct {
	props []models.Property
	err   error
}

func (f *fakeSearch) Search(_ context.Context, _ search.Filters) ([]models.Property, error) {
	return f.props, f.err
}

type fakeSlots struct {
	free    []models.ViewingSlot
	listErr error

	booked    []string
	cancelled []string
}

func (f *fakeSlots) FreeSlots(_ context.Context, _ string) ([]models.ViewingSlot, error) {
	return f.free, f.listErr
}

func (f *fakeSlots) Book(_ context.Context, propertyID string, _ time.Time) (string, error) {
	f.booked = append(f.booked, propertyID)
	return "Viewing booked for property " + propertyID + ".", nil
}

func (f *fakeSlots) Cancel(_ context.Context, propertyID string, _ time.Time) (string, error) {
	f.cancelled = append(f.cancelled, propertyID)
	return "Viewing cancelled for property " + propertyID + ".", nil
}

func TestExecute_SearchReturnsPropertiesTable(t *testing.T) {
	d := NewDispatcher(&fakeSearch{props: []models.Property{
		{PropertyID: "abcfoo42", Price: 550000, City: "Curitiba"},
	}}, &fakeSlots{})

	res, err := d.Execute(context.Background(), SearchRequest{})
	require.NoError(t, err)
	assert.Equal(t, KindProperties, res.Kind)
	assert.Contains(t, res.Table, "abcfoo42")
	assert.Empty(t, res.Message)
}

func TestExecute_GetSlotsReturnsSlotsTable(t *testing.T) {
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	d := NewDispatcher(&fakeSearch{}, &fakeSlots{free: []models.ViewingSlot{
		{PropertyID: "abcfoo42", SlotStart: start, SlotEnd: start.Add(30 * time.Minute), Status: models.SlotStatusFree},
	}})

	res, err := d.Execute(context.Background(), GetSlotsRequest{PropertyID: "abcfoo42"})
	require.NoError(t, err)
	assert.Equal(t, KindSlots, res.Kind)
	assert.Contains(t, res.Table, "2026-09-01")
}

func TestExecute_BookAndCancelReturnConfirmations(t *testing.T) {
	fs := &fakeSlots{}
	d := NewDispatcher(&fakeSearch{}, fs)
	ctx := context.Background()
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	res, err := d.Execute(ctx, BookRequest{PropertyID: "abcfoo42", SlotStart: start})
	require.NoError(t, err)
	assert.Equal(t, KindConfirmation, res.Kind)
	assert.Contains(t, res.Message, "booked")
	assert.Equal(t, []string{"abcfoo42"}, fs.booked)

	res, err = d.Execute(ctx, CancelRequest{PropertyID: "abcfoo42", SlotStart: start})
	require.NoError(t, err)
	assert.Equal(t, KindConfirmation, res.Kind)
	assert.Contains(t, res.Message, "cancelled")
	assert.Equal(t, []string{"abcfoo42"}, fs.cancelled)
}

func TestExecute_ServiceErrorsPassThrough(t *testing.T) {
	d := NewDispatcher(&fakeSearch{err: &search.NoResultsError{}}, &fakeSlots{
		listErr: &slots.NotFoundError{Kind: slots.KindProperty, PropertyID: "999"},
	})
	ctx := context.Background()

	_, err := d.Execute(ctx, SearchRequest{})
	var noResults *search.NoResultsError
	require.ErrorAs(t, err, &noResults)

	_, err = d.Execute(ctx, GetSlotsRequest{PropertyID: "999"})
	var nf *slots.NotFoundError
	require.ErrorAs(t, err, &nf)
}
