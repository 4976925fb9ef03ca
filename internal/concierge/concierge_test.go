package concierge

import (
	"context"
	"errors"
	"testing"

	"travel-agency/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) Generate(ctx context.Context, system string, turns []models.ChatTurn) (string, error) {
	args := m.Called(ctx, system, turns)
	return args.String(0), args.Error(1)
}

var history = []models.ChatTurn{
	{Role: RoleUser, Content: "Hi"},
	{Role: RoleModel, Content: "Hello! Where would you like to go?"},
}

func TestConcierge_SendsOnlyNewestMessage(t *testing.T) {
	g := new(mockGenerator)
	g.On("Generate", mock.Anything, mock.MatchedBy(func(s string) bool { return len(s) > 0 }),
		[]models.ChatTurn{{Role: RoleUser, Content: "Visa for Dubai?"}}).
		Return("Indian passport holders need an e-visa.", nil)

	c := New(g, false)
	reply := c.Reply(context.Background(), "Visa for Dubai?", history)

	assert.Equal(t, "Indian passport holders need an e-visa.", reply)
	g.AssertExpectations(t)
}

func TestConcierge_ReplaysHistoryWhenEnabled(t *testing.T) {
	g := new(mockGenerator)
	want := append(append([]models.ChatTurn{}, history...), models.ChatTurn{Role: RoleUser, Content: "And Bali?"})
	g.On("Generate", mock.Anything, mock.Anything, want).Return("Bali offers visa on arrival.", nil)

	reply := New(g, true).Reply(context.Background(), "And Bali?", history)

	assert.Equal(t, "Bali offers visa on arrival.", reply)
	g.AssertExpectations(t)
}

func TestConcierge_FailuresReturnApology(t *testing.T) {
	failing := new(mockGenerator)
	failing.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("quota exceeded"))

	empty := new(mockGenerator)
	empty.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return("   ", nil)

	assert.Equal(t, Apology, New(failing, false).Reply(context.Background(), "hello", nil))
	assert.Equal(t, Apology, New(empty, false).Reply(context.Background(), "hello", nil))
	assert.Equal(t, Apology, New(nil, false).Reply(context.Background(), "hello", nil))
}
