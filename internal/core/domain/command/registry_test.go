package command

import (
	"context"
	"satpix/internal/core/port"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockResponder struct {
	command string
}

func (m *MockResponder) Respond(_ context.Context, _ *port.ChatMessage) error {
	return nil
}

func (m *MockResponder) GetCommand() string {
	return m.command
}

func TestRegister(t *testing.T) {
	cr := &Registry{}
	mr := &MockResponder{command: "/test"}

	cr.Register(mr)
	assert.Len(t, cr.commands, 1)
}

func TestGetNotRegistered(t *testing.T) {
	cr := &Registry{}

	_, err := cr.Get("test")
	require.EqualError(t, err, "can't fetch command, registry not initialized")
}

func TestGetCommandNotFound(t *testing.T) {
	cr := &Registry{}
	mr := &MockResponder{command: "/test"}

	cr.Register(mr)
	assert.Len(t, cr.commands, 1)

	_, err := cr.Get("/foo")
	require.EqualError(t, err, "command not found")
}

func TestGetCommandFound(t *testing.T) {
	cr := &Registry{}
	mr := &MockResponder{command: "/test"}

	cr.Register(mr)
	assert.Len(t, cr.commands, 1)

	cmd, err := cr.Get("/test")
	require.NoError(t, err)
	assert.NotNil(t, cmd)

	assert.Equal(t, "/test", cmd.GetCommand())
}

func TestListCommands(t *testing.T) {
	cr := &Registry{}
	cr.Register(&MockResponder{command: "/start"})
	cr.Register(&MockResponder{command: "/help"})

	assert.Equal(t, []string{"/help", "/start"}, cr.ListCommands())
}

func TestParseCommand(t *testing.T) {
	type TestCase struct {
		description string
		args        string
		want        string
	}

	testCases := []TestCase{
		{
			description: "should return first word",
			args:        "/help",
			want:        "/help",
		},
		{
			description: "should discard following words",
			args:        "/help me please",
			want:        "/help",
		},
		{
			description: "should strip bot name",
			args:        "/Start@satpix_bot",
			want:        "/start",
		},
		{
			description: "plain text is not a command",
			args:        "Paris, FR",
			want:        "",
		},
		{
			description: "empty on no input",
			args:        "   ",
			want:        "",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			got := ParseCommand(testCase.args)

			assert.Equal(t, testCase.want, got)
		})
	}
}
