package cmd

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dirmod.dev/pkg/dirmod/internal/domain"
	domainmocks "dirmod.dev/pkg/dirmod/internal/domain/mocks"
	m "dirmod.dev/pkg/dirmod/internal/model"
)

func TestCheckCmd_PassesAgainst(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newCheckCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("Check", mock.Anything, mock.MatchedBy(func(args domain.CheckArgs) bool {
		return args.Against == m.Path("src/modules.rs") &&
			args.Visibility == "pub" &&
			args.Format == m.FormatRust &&
			len(args.Dirs) == 1 &&
			args.Dirs[0] == m.Path("src/handlers")
	})).Return(nil)

	cmd.SetArgs([]string{"check", "--against", "src/modules.rs", "--vis", "pub", "src/handlers"})
	err := cmd.Execute()
	require.NoError(t, err)

	mockWorkflow.AssertExpectations(t)
}

func TestCheckCmd_RequiresAgainst(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newCheckCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	cmd.SetArgs([]string{"check", "src"})
	err := cmd.Execute()
	require.Error(t, err)

	mockWorkflow.AssertNotCalled(t, "Check", mock.Anything, mock.Anything)
}

func TestCheckCmd_Stale(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newCheckCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("Check", mock.Anything, mock.Anything).Return(domain.ErrStale)

	cmd.SetArgs([]string{"check", "--against", "out.rs", "src"})
	err := cmd.Execute()
	require.True(t, errors.Is(err, domain.ErrStale))

	mockWorkflow.AssertExpectations(t)
}
