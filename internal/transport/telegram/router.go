package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/support-bot/internal/core"
	"github.com/spec-kit/support-bot/internal/domain"
	"github.com/spec-kit/support-bot/internal/service"
	"github.com/spec-kit/support-bot/internal/transport"
	apperrors "github.com/spec-kit/support-bot/pkg/util"
)

const (
	instructionText = "Press \"Write to operator\", describe your question in a single message and send it. " +
		"An operator will pick it up from the queue and reply here. " +
		"You can attach a photo, video, document or voice message."
	contactsText = "Support channel: @support\nGeneral questions: @helpdesk"
	historyLimit = 10
)

// Router turns raw Telegram updates into service calls. Bot.Run feeds it
// serially, so the per-chat dialog maps below need no locking.
type Router struct {
	bot       *Bot
	core      *core.Core
	support   *service.SupportService
	operators *service.OperatorService
	admin     *service.AdminService
	snapshots service.Snapshotter
	logger    *zap.Logger

	// writing marks users who pressed "Write to operator" and whose next
	// message is a submission. pending holds the active admin dialog per
	// operator, e.g. "set_cooldown" waiting for a number.
	writing map[int64]bool
	pending map[int64]string
}

type RouterDependencies struct {
	Bot       *Bot
	Core      *core.Core
	Support   *service.SupportService
	Operators *service.OperatorService
	Admin     *service.AdminService
	Snapshots service.Snapshotter
	Logger    *zap.Logger
}

func NewRouter(deps RouterDependencies) *Router {
	return &Router{
		bot:       deps.Bot,
		core:      deps.Core,
		support:   deps.Support,
		operators: deps.Operators,
		admin:     deps.Admin,
		snapshots: deps.Snapshots,
		logger:    deps.Logger,
		writing:   make(map[int64]bool),
		pending:   make(map[int64]string),
	}
}

// HandleUpdate dispatches one update. A panic in a handler is logged and
// swallowed so the polling loop survives malformed updates.
func (r *Router) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("update handler panicked", zap.Any("panic", rec))
		}
	}()

	switch {
	case update.CallbackQuery != nil:
		r.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		r.handleMessage(ctx, update.Message)
	}
}

func (r *Router) handleMessage(ctx context.Context, m *tgbotapi.Message) {
	if m.From == nil || m.Chat == nil || !m.Chat.IsPrivate() {
		return
	}
	if r.core.IsOperator(m.From.ID) {
		r.handleOperatorMessage(ctx, m)
		return
	}
	r.handleUserMessage(ctx, m)
}

// --- user side ---

func (r *Router) handleUserMessage(ctx context.Context, m *tgbotapi.Message) {
	userID := m.From.ID

	if m.Command() == "start" {
		res := r.support.Register(userID, m.From.UserName, m.From.FirstName)
		if res.State == domain.GateStateChallenged {
			r.send(userID, "Hi! To prove you are human, solve this:\n\n"+res.Question)
			return
		}
		r.sendMenu(userID, "Hi! Use the menu below.", mainMenu())
		return
	}

	u, ok := r.core.UserInfo(userID)
	if !ok {
		res := r.support.Register(userID, m.From.UserName, m.From.FirstName)
		if res.State == domain.GateStateChallenged {
			r.send(userID, "Hi! To prove you are human, solve this:\n\n"+res.Question)
			return
		}
		u, _ = r.core.UserInfo(userID)
	}

	if !u.Verified() {
		r.handleChallengeAnswer(userID, m.Text)
		return
	}

	switch m.Text {
	case btnWriteOperator:
		r.writing[userID] = true
		r.sendMenu(userID, "Describe your question in one message and send it.", backKeyboard())
		return
	case btnBack:
		delete(r.writing, userID)
		r.sendMenu(userID, "Main menu.", mainMenu())
		return
	case btnInstruction:
		r.send(userID, instructionText)
		return
	case btnStats:
		r.sendUserStats(userID)
		return
	case btnContacts:
		r.send(userID, contactsText)
		return
	}

	if r.writing[userID] {
		r.submit(ctx, m)
		return
	}
	r.sendMenu(userID, "Use the menu below. Press \"Write to operator\" to send a message.", mainMenu())
}

func (r *Router) handleChallengeAnswer(userID int64, text string) {
	question, pending := r.core.EnsureChallenge(userID)
	if !pending {
		// Challenge was lost (restart). EnsureChallenge reissued one.
		r.send(userID, "Let's try again. Solve this:\n\n"+question)
		return
	}

	err := r.support.VerifyChallenge(userID, strings.TrimSpace(text))
	switch {
	case err == nil:
		delete(r.writing, userID)
		r.sendMenu(userID, "Correct! You can write to an operator now.", mainMenu())
	case apperrors.HasCode(err, apperrors.CodeNotANumber):
		r.send(userID, "Send the answer as a number.\n\n"+question)
	case apperrors.HasCode(err, apperrors.CodeWrongAnswer):
		r.send(userID, "Wrong answer, try again:\n\n"+question)
	default:
		r.logger.Warn("challenge verification failed", zap.Int64("user_id", userID), zap.Error(err))
	}
}

func (r *Router) submit(ctx context.Context, m *tgbotapi.Message) {
	userID := m.From.ID
	ev := inboundEvent(m)

	_, position, err := r.support.Submit(ctx, ev)
	if err != nil {
		r.send(userID, submitFailureText(err))
		return
	}

	delete(r.writing, userID)
	text := fmt.Sprintf("Your message is in the queue, position %d.", position)
	if r.core.Settings().AutoGreet {
		text += " An operator will reply here as soon as possible."
	}
	r.sendMenu(userID, text, mainMenu())
}

func (r *Router) sendUserStats(userID int64) {
	ov, ok := r.support.Overview(userID)
	if !ok {
		return
	}
	r.send(userID, fmt.Sprintf(
		"Your statistics\n\nMessages sent: %d\nAwaiting answer: %d\nDays with us: %d",
		ov.MessagesSent, ov.Unanswered, ov.DaysInSystem))
}

// submitFailureText maps a rejected submission onto a user-facing reply.
func submitFailureText(err error) string {
	switch {
	case apperrors.HasCode(err, apperrors.CodeCooldownActive):
		return fmt.Sprintf("Please wait %d seconds before sending another message.", apperrors.RemainingSeconds(err))
	case apperrors.HasCode(err, apperrors.CodeTooShort):
		return "The message is too short. Please describe your question in more detail."
	case apperrors.HasCode(err, apperrors.CodeOutsideWorkHours):
		return "Support is offline right now. Please write during work hours."
	default:
		return "Could not accept the message, please try again later."
	}
}

// inboundEvent extracts the payload kind and file id from a Telegram message.
func inboundEvent(m *tgbotapi.Message) transport.InboundEvent {
	ev := transport.InboundEvent{
		UserID:    m.From.ID,
		Kind:      domain.MessageKindText,
		Text:      m.Text,
		Caption:   m.Caption,
		Username:  m.From.UserName,
		FirstName: m.From.FirstName,
	}
	switch {
	case len(m.Photo) > 0:
		ev.Kind = domain.MessageKindPhoto
		ev.FileID = m.Photo[len(m.Photo)-1].FileID
	case m.Video != nil:
		ev.Kind = domain.MessageKindVideo
		ev.FileID = m.Video.FileID
	case m.Document != nil:
		ev.Kind = domain.MessageKindDocument
		ev.FileID = m.Document.FileID
	case m.Voice != nil:
		ev.Kind = domain.MessageKindVoice
		ev.FileID = m.Voice.FileID
	}
	return ev
}

// --- operator side ---

func (r *Router) handleOperatorMessage(ctx context.Context, m *tgbotapi.Message) {
	operatorID := m.From.ID

	if cmd := m.Command(); cmd != "" {
		r.handleOperatorCommand(ctx, operatorID, cmd, strings.TrimSpace(m.CommandArguments()))
		return
	}

	if state, ok := r.pending[operatorID]; ok {
		delete(r.pending, operatorID)
		r.handlePendingInput(ctx, operatorID, state, strings.TrimSpace(m.Text))
		return
	}

	switch m.Text {
	case btnTakeMessage:
		r.takeNext(operatorID)
		return
	case btnReply:
		if _, ok := r.operators.ActiveClaim(operatorID); ok {
			r.send(operatorID, "Type your answer, it will be delivered to the user.")
		} else {
			r.send(operatorID, "Take a message from the queue first.")
		}
		return
	case btnStats:
		r.sendOperatorStats(operatorID)
		return
	case btnInfoPanel:
		r.sendInfoPanel(operatorID)
		return
	case btnResetClaim:
		if r.operators.ResetClaim(operatorID) {
			r.send(operatorID, "Claim released.")
		} else {
			r.send(operatorID, "No active claim.")
		}
		return
	case btnSaveData:
		r.snapshots.SaveNow()
		r.send(operatorID, "Data saved.")
		return
	case btnManage:
		if !r.core.IsAdmin(operatorID) {
			r.send(operatorID, "Only the admin can manage settings.")
			return
		}
		r.sendRows(operatorID, "Settings", settingsMenuActions())
		return
	case btnBack:
		r.sendMenu(operatorID, "Operator menu.", operatorMenu())
		return
	}

	if _, ok := r.operators.ActiveClaim(operatorID); ok {
		r.answerFromMessage(ctx, operatorID, m)
		return
	}
	r.sendMenu(operatorID, "Operator menu.", operatorMenu())
}

func (r *Router) handleOperatorCommand(ctx context.Context, operatorID int64, cmd, args string) {
	switch cmd {
	case "start":
		r.sendMenu(operatorID, "Operator menu.", operatorMenu())
	case "admin":
		if !r.core.IsAdmin(operatorID) {
			r.send(operatorID, "Only the admin can manage settings.")
			return
		}
		r.sendRows(operatorID, "Settings", settingsMenuActions())
	case "broadcast":
		if !r.core.IsAdmin(operatorID) {
			r.send(operatorID, "Only the admin can broadcast.")
			return
		}
		if args == "" {
			r.pending[operatorID] = "broadcast"
			r.send(operatorID, "Send the broadcast text.")
			return
		}
		sent, failed := r.admin.Broadcast(ctx, args)
		r.send(operatorID, fmt.Sprintf("Broadcast done: %d delivered, %d failed.", sent, failed))
	case "addop":
		if !r.core.IsAdmin(operatorID) {
			r.send(operatorID, "Only the admin can manage operators.")
			return
		}
		r.send(operatorID, r.addOperatorReply(args))
	case "delop":
		if !r.core.IsAdmin(operatorID) {
			r.send(operatorID, "Only the admin can manage operators.")
			return
		}
		r.send(operatorID, r.removeOperatorReply(args))
	case "template":
		if args == "" {
			r.send(operatorID, r.templateList())
			return
		}
		tpl, err := r.operators.SendTemplate(ctx, operatorID, args)
		switch {
		case err == nil:
			r.send(operatorID, fmt.Sprintf("Template %q sent.", tpl.Name))
		case apperrors.HasCode(err, apperrors.CodeClaimRequired):
			r.send(operatorID, "Take a message from the queue first.")
		case apperrors.HasCode(err, apperrors.CodeTemplateNotFound):
			r.send(operatorID, "No template with that key.\n\n"+r.templateList())
		default:
			r.send(operatorID, "Could not deliver the template: "+err.Error())
		}
	default:
		r.send(operatorID, "Unknown command.")
	}
}

func (r *Router) takeNext(operatorID int64) {
	ticket, err := r.operators.TakeNext(operatorID)
	if err != nil {
		if apperrors.HasCode(err, apperrors.CodeQueueEmpty) {
			r.send(operatorID, "The queue is empty.")
			return
		}
		r.send(operatorID, "Could not take a message: "+err.Error())
		return
	}

	info := r.support.FormatUserInfo(ticket.UserID)
	r.send(operatorID, fmt.Sprintf("Message from:\n%s\n\n%s\n\nType your answer.", info, ticket.Payload.Summary()))
	if ticket.Payload.Kind != domain.MessageKindText {
		if err := r.bot.SendMedia(operatorID, ticket.Payload.Kind, ticket.Payload.FileID, ticket.Payload.Caption); err != nil {
			r.logger.Warn("media forward failed", zap.Int64("operator_id", operatorID), zap.Error(err))
		}
	}
}

func (r *Router) answerFromMessage(ctx context.Context, operatorID int64, m *tgbotapi.Message) {
	ev := inboundEvent(m)
	if ev.Kind != domain.MessageKindText {
		if err := r.operators.SendAnswerMedia(operatorID, ev.Kind, ev.FileID, ev.Caption); err != nil {
			r.send(operatorID, "Could not deliver the file: "+err.Error())
			return
		}
		r.send(operatorID, "File delivered. The claim stays open until you send a text answer.")
		return
	}

	total, err := r.operators.SendAnswer(ctx, operatorID, m.Text)
	if err != nil {
		if apperrors.HasCode(err, apperrors.CodeDeliveryFailed) {
			r.send(operatorID, "Could not deliver the answer, the user may have blocked the bot.")
			return
		}
		r.send(operatorID, "Could not send the answer: "+err.Error())
		return
	}
	r.send(operatorID, fmt.Sprintf("Answer delivered. Your total: %d.", total))
}

func (r *Router) sendOperatorStats(operatorID int64) {
	ov := r.operators.Overview(operatorID)
	r.send(operatorID, fmt.Sprintf(
		"Your statistics\n\nAnswered: %d\nRank: %d\nAnswered by everyone: %d\nIn queue: %d",
		ov.Answered, ov.Rank, ov.TotalAnswered, ov.QueueDepth))
}

func (r *Router) sendInfoPanel(operatorID int64) {
	p := r.operators.Panel()
	r.send(operatorID, fmt.Sprintf(
		"Info panel\n\nIn queue: %d\nOldest message: %.1f min\nEfficiency: %.1f%%\nAuto-greet: %s\nCaptcha: %s\nWork hours: %s",
		p.QueueDepth, p.OldestAgeMin, p.EfficiencyPct,
		flag(p.AutoGreet), flag(p.CaptchaEnabled), flag(p.WorkHoursActive)))
}

// --- callbacks ---

func (r *Router) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.From == nil || cb.Message == nil {
		return
	}
	r.bot.ackCallback(cb.ID)

	actorID := cb.From.ID
	if !r.core.IsOperator(actorID) {
		return
	}

	if userID, action, ok := ticketCallback(cb.Data); ok {
		r.handleTicketCallback(ctx, actorID, userID, action)
		return
	}
	r.handleAdminCallback(ctx, actorID, cb)
}

// ticketCallback parses "reply_123" style data into (userID, action).
func ticketCallback(data string) (int64, string, bool) {
	action, rest, found := strings.Cut(data, "_")
	if !found {
		return 0, "", false
	}
	switch action {
	case "reply", "solve", "reject", "history":
	default:
		return 0, "", false
	}
	userID, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		return 0, "", false
	}
	return userID, action, true
}

func (r *Router) handleTicketCallback(ctx context.Context, operatorID, userID int64, action string) {
	switch action {
	case "reply":
		r.operators.StartDirectClaim(operatorID, userID)
		r.send(operatorID, fmt.Sprintf("Replying to user %d. Type your answer.", userID))
	case "solve":
		n := r.operators.Resolve(ctx, operatorID, userID)
		r.send(operatorID, fmt.Sprintf("Marked %d messages answered.", n))
	case "reject":
		n := r.operators.Reject(ctx, operatorID, userID)
		r.send(operatorID, fmt.Sprintf("Removed %d messages from the queue.", n))
	case "history":
		r.send(operatorID, r.historyText(userID))
	}
}

func (r *Router) historyText(userID int64) string {
	entries := r.operators.History(userID, historyLimit)
	if len(entries) == 0 {
		return "No history for this user."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Last %d messages from %s:\n", len(entries), r.support.FormatUserInfo(userID))
	for _, e := range entries {
		mark := "new"
		if e.Answered {
			mark = "answered"
		}
		fmt.Fprintf(&b, "\n[%s] %s", mark, e.Text)
	}
	return b.String()
}

// handleAdminCallback drives the inline settings menus. Every branch either
// redraws the message in place or arms a pending text dialog.
func (r *Router) handleAdminCallback(ctx context.Context, actorID int64, cb *tgbotapi.CallbackQuery) {
	if !r.core.IsAdmin(actorID) {
		return
	}
	chatID := cb.Message.Chat.ID
	messageID := cb.Message.MessageID
	s := r.admin.SettingsView()

	edit := func(text string, rows [][]transport.Action) {
		if err := r.bot.editWithActions(chatID, messageID, text, rows); err != nil {
			r.logger.Debug("menu edit failed", zap.Error(err))
		}
	}

	switch cb.Data {
	case "back_to_settings":
		edit("Settings", settingsMenuActions())
	case "menu_operators":
		edit("Operators", operatorsMenuActions())
	case "menu_system":
		edit(r.systemMenuText(s), systemMenuActions(s.AutoGreet, s.NotifyOperators, s.CaptchaEnabled))
	case "menu_templates":
		edit("Answer templates", templatesMenuActions())
	case "menu_worktime":
		edit("Work hours", worktimeMenuActions(s.WorkHoursEnabled, s.WorkHoursStart, s.WorkHoursEnd))
	case "menu_cleanup":
		edit("Cleanup", cleanupMenuActions())

	case "toggle_greet":
		r.admin.ToggleAutoGreet()
		s = r.admin.SettingsView()
		edit(r.systemMenuText(s), systemMenuActions(s.AutoGreet, s.NotifyOperators, s.CaptchaEnabled))
	case "toggle_notify":
		r.admin.ToggleNotifyOperators()
		s = r.admin.SettingsView()
		edit(r.systemMenuText(s), systemMenuActions(s.AutoGreet, s.NotifyOperators, s.CaptchaEnabled))
	case "toggle_captcha":
		r.admin.ToggleCaptcha()
		s = r.admin.SettingsView()
		edit(r.systemMenuText(s), systemMenuActions(s.AutoGreet, s.NotifyOperators, s.CaptchaEnabled))
	case "toggle_worktime":
		r.admin.ToggleWorkHours()
		s = r.admin.SettingsView()
		edit("Work hours", worktimeMenuActions(s.WorkHoursEnabled, s.WorkHoursStart, s.WorkHoursEnd))

	case "set_queue_limit":
		r.pending[actorID] = "set_queue_limit"
		r.send(actorID, fmt.Sprintf("Send the queue limit (%d-%d).", domain.MinQueueSize, domain.MaxQueueSize))
	case "set_cooldown":
		r.pending[actorID] = "set_cooldown"
		r.send(actorID, fmt.Sprintf("Send the cooldown in seconds (%d-%d).", domain.MinCooldownSeconds, domain.MaxCooldownSeconds))
	case "set_work_start":
		r.pending[actorID] = "set_work_start"
		r.send(actorID, fmt.Sprintf("Send the start hour (%d-%d).", domain.MinWorkHour, domain.MaxWorkHour))
	case "set_work_end":
		r.pending[actorID] = "set_work_end"
		r.send(actorID, fmt.Sprintf("Send the end hour (%d-%d).", domain.MinWorkHour, domain.MaxWorkHour))

	case "add_operator":
		r.pending[actorID] = "add_operator"
		r.send(actorID, "Send the numeric Telegram id of the new operator.")
	case "remove_operator":
		r.pending[actorID] = "remove_operator"
		r.send(actorID, "Send the numeric Telegram id of the operator to remove.")
	case "list_operators":
		r.send(actorID, r.operatorList())

	case "list_templates":
		r.send(actorID, r.templateList())
	case "add_template":
		r.pending[actorID] = "add_template_name"
		r.send(actorID, "Send a short name for the new template.")
	case "edit_template":
		r.pending[actorID] = "edit_template_key"
		r.send(actorID, "Send the key of the template to edit.\n\n"+r.templateList())
	case "delete_template":
		r.pending[actorID] = "delete_template"
		r.send(actorID, "Send the key of the template to delete.\n\n"+r.templateList())

	case "clean_queue":
		n := r.admin.ClearQueue(ctx, actorID)
		r.send(actorID, fmt.Sprintf("Removed %d messages from the queue.", n))
	case "clean_history":
		edit("Delete the entire message history?", confirmActions("confirm_clean_history", "menu_cleanup"))
	case "confirm_clean_history":
		users, entries := r.admin.ClearHistory(actorID)
		edit(fmt.Sprintf("History cleared: %d entries across %d users.", entries, users), cleanupMenuActions())
	case "reset_stats":
		edit("Reset all operator statistics?", confirmActions("confirm_reset_stats", "menu_cleanup"))
	case "confirm_reset_stats":
		ops, answers := r.admin.ResetStats(actorID)
		edit(fmt.Sprintf("Stats reset: %d answers across %d operators.", answers, ops), cleanupMenuActions())
	}
}

func (r *Router) systemMenuText(s domain.Settings) string {
	return fmt.Sprintf("System settings\n\nQueue limit: %d\nCooldown: %d s", s.MaxQueueSize, s.CooldownSeconds)
}

// handlePendingInput consumes the text an armed admin dialog was waiting
// for. The state was already cleared by the caller, so a bad input just
// reports and the admin reopens the dialog.
func (r *Router) handlePendingInput(ctx context.Context, actorID int64, state, text string) {
	switch state {
	case "broadcast":
		sent, failed := r.admin.Broadcast(ctx, text)
		r.send(actorID, fmt.Sprintf("Broadcast done: %d delivered, %d failed.", sent, failed))

	case "set_queue_limit":
		r.applyNumericSetting(actorID, text, r.admin.SetMaxQueueSize, "Queue limit")
	case "set_cooldown":
		r.applyNumericSetting(actorID, text, r.admin.SetCooldownSeconds, "Cooldown")
	case "set_work_start":
		r.applyNumericSetting(actorID, text, r.admin.SetWorkHoursStart, "Start hour")
	case "set_work_end":
		r.applyNumericSetting(actorID, text, r.admin.SetWorkHoursEnd, "End hour")

	case "add_operator":
		r.send(actorID, r.addOperatorReply(text))
	case "remove_operator":
		r.send(actorID, r.removeOperatorReply(text))

	case "add_template_name":
		r.pending[actorID] = "add_template_text:" + text
		r.send(actorID, "Now send the template text.")
	case "edit_template_key":
		r.pending[actorID] = "edit_template_text:" + text
		r.send(actorID, "Now send the new text.")
	case "delete_template":
		name, err := r.admin.DeleteTemplate(text)
		if err != nil {
			r.send(actorID, "No template with that key.")
			return
		}
		r.send(actorID, fmt.Sprintf("Template %q deleted.", name))

	default:
		if name, ok := strings.CutPrefix(state, "add_template_text:"); ok {
			key := r.admin.AddTemplate(name, text)
			r.send(actorID, fmt.Sprintf("Template %q saved under key %s.", name, key))
			return
		}
		if key, ok := strings.CutPrefix(state, "edit_template_text:"); ok {
			if err := r.admin.UpdateTemplate(key, text); err != nil {
				r.send(actorID, "No template with that key.")
				return
			}
			r.send(actorID, "Template updated.")
			return
		}
		r.logger.Warn("unknown dialog state", zap.String("state", state))
	}
}

func (r *Router) applyNumericSetting(actorID int64, text string, apply func(int) error, label string) {
	value, err := strconv.Atoi(text)
	if err != nil {
		r.send(actorID, "Send a plain number.")
		return
	}
	if err := apply(value); err != nil {
		r.send(actorID, "Value out of range, nothing changed.")
		return
	}
	r.send(actorID, fmt.Sprintf("%s set to %d.", label, value))
}

func (r *Router) addOperatorReply(raw string) string {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return "Send a numeric Telegram id."
	}
	if err := r.admin.AddOperator(id); err != nil {
		if apperrors.HasCode(err, apperrors.CodeOperatorExists) {
			return "That id is already an operator."
		}
		return "Could not add the operator."
	}
	return fmt.Sprintf("Operator %d added.", id)
}

func (r *Router) removeOperatorReply(raw string) string {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return "Send a numeric Telegram id."
	}
	err = r.admin.RemoveOperator(id)
	switch {
	case err == nil:
		return fmt.Sprintf("Operator %d removed.", id)
	case apperrors.HasCode(err, apperrors.CodeCannotRemoveAdmin):
		return "The admin cannot be removed."
	case apperrors.HasCode(err, apperrors.CodeCannotRemoveLastOp):
		return "Cannot remove the last operator."
	case apperrors.HasCode(err, apperrors.CodeOperatorNotFound):
		return "No operator with that id."
	default:
		return "Could not remove the operator."
	}
}

func (r *Router) operatorList() string {
	var b strings.Builder
	b.WriteString("Operators:\n")
	adminID := r.core.AdminID()
	for _, id := range r.core.Operators() {
		if id == adminID {
			fmt.Fprintf(&b, "\n%d (admin)", id)
		} else {
			fmt.Fprintf(&b, "\n%d", id)
		}
	}
	return b.String()
}

func (r *Router) templateList() string {
	templates := r.admin.Templates()
	if len(templates) == 0 {
		return "No templates yet."
	}
	var b strings.Builder
	b.WriteString("Templates:\n")
	for _, t := range templates {
		fmt.Fprintf(&b, "\n%s. %s: %s", t.Key, t.Template.Name, t.Template.Text)
	}
	return b.String()
}

// --- send helpers ---

func (r *Router) send(targetID int64, text string) {
	if err := r.bot.Send(targetID, text); err != nil {
		r.logger.Debug("send failed", zap.Int64("target_id", targetID), zap.Error(err))
	}
}

func (r *Router) sendMenu(targetID int64, text string, keyboard tgbotapi.ReplyKeyboardMarkup) {
	if err := r.bot.sendWithKeyboard(targetID, text, keyboard); err != nil {
		r.logger.Debug("send failed", zap.Int64("target_id", targetID), zap.Error(err))
	}
}

func (r *Router) sendRows(targetID int64, text string, rows [][]transport.Action) {
	if err := r.bot.sendActionRows(targetID, text, rows); err != nil {
		r.logger.Debug("send failed", zap.Int64("target_id", targetID), zap.Error(err))
	}
}
