package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/support-bot/internal/domain"
	apperrors "github.com/spec-kit/support-bot/pkg/util"
)

// queueTicket pushes one accepted submission for userID.
func queueTicket(t *testing.T, env *testEnv, userID int64) {
	t.Helper()
	env.verifiedUser(userID)
	_, _, err := env.support.Submit(context.Background(), textEvent(userID, "please help me"))
	require.NoError(t, err)
}

func TestSendAnswer_SettlesTicket(t *testing.T) {
	env := newTestEnv(t)
	env.core.SeedRoster(900, nil)
	queueTicket(t, env, 1)

	_, err := env.operators.TakeNext(900)
	require.NoError(t, err)

	total, err := env.operators.SendAnswer(context.Background(), 900, "check your spam folder")
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	// The user got the rendered answer.
	msgs := env.notifier.sentTo(1)
	require.NotEmpty(t, msgs)
	assert.Equal(t, "Operator answer:\n\ncheck your spam folder", msgs[len(msgs)-1].Text)

	// Ticket settled: queue drained, claim gone, history marked, stat bumped.
	assert.Equal(t, 0, env.core.QueueDepth())
	_, claimed := env.operators.ActiveClaim(900)
	assert.False(t, claimed)
	assert.Equal(t, 0, env.core.UnansweredCount(1))
	stat, _ := env.core.StatOf(900)
	assert.Equal(t, 1, stat.Answered)
	assert.Len(t, stat.ResponseSeconds, 1)
}

func TestSendAnswer_WithoutClaim(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.operators.SendAnswer(context.Background(), 900, "hello?")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeClaimRequired))
}

func TestSendAnswer_DeliveryFailureKeepsClaim(t *testing.T) {
	env := newTestEnv(t)
	env.core.SeedRoster(900, nil)
	queueTicket(t, env, 1)
	_, err := env.operators.TakeNext(900)
	require.NoError(t, err)

	env.notifier.failFor[1] = true
	_, err = env.operators.SendAnswer(context.Background(), 900, "check your spam folder")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeDeliveryFailed))

	// Nothing settled: the operator can retry or reset.
	_, claimed := env.operators.ActiveClaim(900)
	assert.True(t, claimed)
	assert.Equal(t, 1, env.core.QueueDepth())
	assert.Equal(t, 1, env.core.UnansweredCount(1))
}

func TestSendTemplate(t *testing.T) {
	env := newTestEnv(t)
	env.core.SeedRoster(900, nil)
	key := env.admin.AddTemplate("spam", "Check your spam folder.")
	queueTicket(t, env, 1)
	_, err := env.operators.TakeNext(900)
	require.NoError(t, err)

	tpl, err := env.operators.SendTemplate(context.Background(), 900, key)
	require.NoError(t, err)
	assert.Equal(t, "spam", tpl.Name)

	msgs := env.notifier.sentTo(1)
	require.NotEmpty(t, msgs)
	assert.Contains(t, msgs[len(msgs)-1].Text, "Check your spam folder.")

	_, err = env.operators.SendTemplate(context.Background(), 900, "99")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeTemplateNotFound))
}

func TestSendAnswerMedia_DoesNotSettle(t *testing.T) {
	env := newTestEnv(t)
	env.core.SeedRoster(900, nil)
	queueTicket(t, env, 1)
	_, err := env.operators.TakeNext(900)
	require.NoError(t, err)

	require.NoError(t, env.operators.SendAnswerMedia(900, domain.MessageKindPhoto, "file-1", "see screenshot"))

	msgs := env.notifier.sentTo(1)
	require.NotEmpty(t, msgs)
	assert.Equal(t, domain.MessageKindPhoto, msgs[len(msgs)-1].Kind)

	// The claim and queue entry stay until a text answer closes them.
	_, claimed := env.operators.ActiveClaim(900)
	assert.True(t, claimed)
	assert.Equal(t, 1, env.core.QueueDepth())
}

func TestResolve_NotifiesUser(t *testing.T) {
	env := newTestEnv(t)
	env.core.SeedRoster(900, nil)
	queueTicket(t, env, 1)

	flipped := env.operators.Resolve(context.Background(), 900, 1)
	assert.Equal(t, 1, flipped)
	assert.Equal(t, 0, env.core.UnansweredCount(1))

	msgs := env.notifier.sentTo(1)
	require.NotEmpty(t, msgs)
	assert.Contains(t, msgs[len(msgs)-1].Text, "solved")
}

func TestReject_SweepsQueue(t *testing.T) {
	env := newTestEnv(t)
	env.core.SeedRoster(900, nil)
	queueTicket(t, env, 1)
	queueTicket(t, env, 2)

	removed := env.operators.Reject(context.Background(), 900, 1)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, env.core.QueueDepth())

	msgs := env.notifier.sentTo(1)
	require.NotEmpty(t, msgs)
	assert.Contains(t, msgs[len(msgs)-1].Text, "rejected")
}

func TestOperatorOverviewAndPanel(t *testing.T) {
	env := newTestEnv(t)
	env.core.SeedRoster(900, nil)
	queueTicket(t, env, 1)
	_, err := env.operators.TakeNext(900)
	require.NoError(t, err)
	_, err = env.operators.SendAnswer(context.Background(), 900, "done, closing this")
	require.NoError(t, err)
	queueTicket(t, env, 2)

	ov := env.operators.Overview(900)
	assert.Equal(t, 1, ov.Answered)
	assert.Equal(t, 1, ov.Rank)
	assert.Equal(t, 1, ov.TotalAnswered)
	assert.Equal(t, 1, ov.QueueDepth)

	panel := env.operators.Panel()
	assert.Equal(t, 1, panel.QueueDepth)
	assert.Equal(t, 50.0, panel.EfficiencyPct)
	assert.True(t, panel.AutoGreet)
	assert.True(t, panel.CaptchaEnabled)
	assert.False(t, panel.WorkHoursActive)
}
