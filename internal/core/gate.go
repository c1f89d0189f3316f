package core

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spec-kit/support-bot/internal/domain"
	apperrors "github.com/spec-kit/support-bot/pkg/util"
)

// MinMessageLength is the shortest accepted text submission.
const MinMessageLength = 5

// RegisterResult reports what Register did for a user.
type RegisterResult struct {
	Created  bool
	State    domain.GateState
	Question string
}

// Register creates the user on first contact and advances the identity gate.
// With captcha enabled a fresh arithmetic challenge moves the gate to
// CHALLENGED; otherwise the user is VERIFIED immediately. Registering an
// existing user never regresses the gate.
func (c *Core) Register(userID int64, username, firstName string) RegisterResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	u := c.userLocked(userID)
	created := false
	if u == nil {
		u = &domain.User{
			ID:        userID,
			Username:  username,
			FirstName: firstName,
			Gate:      domain.GateStateNew,
			JoinedAt:  c.now().Unix(),
		}
		c.users[userID] = u
		c.userOrder = append(c.userOrder, userID)
		created = true
	}

	if u.Gate != domain.GateStateVerified {
		if c.settings.CaptchaEnabled {
			if u.ChallengeQuestion == "" {
				c.issueChallengeLocked(u)
			}
			u.Gate = domain.GateStateChallenged
		} else {
			u.Gate = domain.GateStateVerified
		}
	}

	return RegisterResult{Created: created, State: u.Gate, Question: u.ChallengeQuestion}
}

// EnsureChallenge returns the pending challenge question for a CHALLENGED
// user, issuing a fresh one when none is pending (e.g. after a restart,
// which does not carry in-flight challenge text over).
func (c *Core) EnsureChallenge(userID int64) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	u := c.userLocked(userID)
	if u == nil || u.Gate != domain.GateStateChallenged {
		return "", false
	}
	if u.ChallengeQuestion == "" {
		c.issueChallengeLocked(u)
	}
	return u.ChallengeQuestion, true
}

// SubmitChallengeAnswer checks a raw captcha answer. A non-numeric answer or
// a mismatch keeps the gate CHALLENGED with the same question; the caller
// re-shows it. A match moves the gate to VERIFIED.
func (c *Core) SubmitChallengeAnswer(userID int64, raw string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	u := c.userLocked(userID)
	if u == nil || u.Gate != domain.GateStateChallenged {
		return apperrors.NewNotFound("pending challenge", map[string]any{"user_id": userID})
	}
	if u.ChallengeQuestion == "" {
		c.issueChallengeLocked(u)
	}

	answer, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return apperrors.NewNotANumber(raw)
	}
	if answer != u.ChallengeAnswer {
		return apperrors.NewWrongAnswer(u.ChallengeQuestion)
	}

	u.Gate = domain.GateStateVerified
	u.ChallengeQuestion = ""
	u.ChallengeAnswer = 0
	return nil
}

// CheckCooldown returns the remaining anti-flood seconds for the user, 0
// when a submission would be accepted now.
func (c *Core) CheckCooldown(userID int64) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	u := c.userLocked(userID)
	if u == nil {
		return 0
	}
	return c.cooldownRemainingLocked(u)
}

func (c *Core) cooldownRemainingLocked(u *domain.User) int64 {
	elapsed := c.now().Unix() - u.LastAcceptedAt
	remaining := int64(c.settings.CooldownSeconds) - elapsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// AcceptSubmission runs the full admission pipeline for a verified user's
// message: verified check, work-hours check, cooldown check, length check,
// then enqueue plus an unconditional history append. It returns the queued
// ticket and the user's 1-based queue position.
func (c *Core) AcceptSubmission(userID int64, payload domain.Payload) (domain.Ticket, int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	u := c.userLocked(userID)
	if u == nil || u.Gate != domain.GateStateVerified {
		return domain.Ticket{}, 0, apperrors.NewNotFound("verified user", map[string]any{"user_id": userID})
	}
	if !c.settings.InsideWorkHours(c.now().Hour()) {
		return domain.Ticket{}, 0, apperrors.NewOutsideWorkHours(c.settings.WorkHoursStart, c.settings.WorkHoursEnd)
	}
	if remaining := c.cooldownRemainingLocked(u); remaining > 0 {
		return domain.Ticket{}, 0, apperrors.NewCooldownActive(remaining)
	}
	if payload.Kind == domain.MessageKindText && len([]rune(payload.Text)) < MinMessageLength {
		return domain.Ticket{}, 0, apperrors.NewTooShort(MinMessageLength)
	}

	ticket := c.enqueueLocked(userID, payload)
	u.MessagesSent++
	u.LastAcceptedAt = c.now().Unix()

	return ticket, len(c.queue), nil
}

func (c *Core) issueChallengeLocked(u *domain.User) {
	op := [3]string{"+", "-", "*"}[c.intn(3)]

	var a, b, answer int
	switch op {
	case "+":
		a = 10 + c.intn(41)
		b = 10 + c.intn(41)
		answer = a + b
	case "-":
		// Disjoint operand ranges keep the result positive.
		a = 50 + c.intn(51)
		b = 10 + c.intn(40)
		answer = a - b
	default:
		a = 2 + c.intn(8)
		b = 2 + c.intn(8)
		answer = a * b
	}

	u.ChallengeQuestion = fmt.Sprintf("%d %s %d", a, op, b)
	u.ChallengeAnswer = answer
}
