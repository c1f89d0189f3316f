package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/spec-kit/support-bot/internal/transport"
)

// Reply-keyboard button labels. The router matches inbound text against
// these, so they double as the user-visible command vocabulary.
const (
	btnWriteOperator = "Write to operator"
	btnInstruction   = "Instruction"
	btnStats         = "Statistics"
	btnContacts      = "Contacts"
	btnBack          = "Back"

	btnTakeMessage = "Take message"
	btnReply       = "Reply"
	btnInfoPanel   = "Info panel"
	btnManage      = "Manage"
	btnResetClaim  = "Reset claim"
	btnSaveData    = "Save data"
)

func mainMenu() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnWriteOperator),
			tgbotapi.NewKeyboardButton(btnInstruction),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnStats),
			tgbotapi.NewKeyboardButton(btnContacts),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

func operatorMenu() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnTakeMessage),
			tgbotapi.NewKeyboardButton(btnReply),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnStats),
			tgbotapi.NewKeyboardButton(btnInfoPanel),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnManage),
			tgbotapi.NewKeyboardButton(btnResetClaim),
			tgbotapi.NewKeyboardButton(btnSaveData),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

func backKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnBack)),
	)
	kb.ResizeKeyboard = true
	return kb
}

// Admin inline menus. Callback ids are matched in router.handleCallback.

func settingsMenuActions() [][]transport.Action {
	return [][]transport.Action{
		{
			{Label: "Operators", ActionID: "menu_operators"},
			{Label: "System", ActionID: "menu_system"},
		},
		{
			{Label: "Templates", ActionID: "menu_templates"},
			{Label: "Work hours", ActionID: "menu_worktime"},
		},
		{
			{Label: "Cleanup", ActionID: "menu_cleanup"},
		},
	}
}

func operatorsMenuActions() [][]transport.Action {
	return [][]transport.Action{
		{
			{Label: "Add operator", ActionID: "add_operator"},
			{Label: "Remove operator", ActionID: "remove_operator"},
		},
		{
			{Label: "List operators", ActionID: "list_operators"},
			{Label: "Back", ActionID: "back_to_settings"},
		},
	}
}

func systemMenuActions(autoGreet, notify, captcha bool) [][]transport.Action {
	return [][]transport.Action{
		{
			{Label: flag(autoGreet) + " Auto greet", ActionID: "toggle_greet"},
			{Label: flag(notify) + " Notifications", ActionID: "toggle_notify"},
		},
		{
			{Label: flag(captcha) + " Captcha", ActionID: "toggle_captcha"},
			{Label: "Queue limit", ActionID: "set_queue_limit"},
		},
		{
			{Label: "Cooldown", ActionID: "set_cooldown"},
			{Label: "Back", ActionID: "back_to_settings"},
		},
	}
}

func templatesMenuActions() [][]transport.Action {
	return [][]transport.Action{
		{
			{Label: "List templates", ActionID: "list_templates"},
			{Label: "Add template", ActionID: "add_template"},
		},
		{
			{Label: "Edit template", ActionID: "edit_template"},
			{Label: "Delete template", ActionID: "delete_template"},
		},
		{
			{Label: "Back", ActionID: "back_to_settings"},
		},
	}
}

func worktimeMenuActions(enabled bool, start, end int) [][]transport.Action {
	return [][]transport.Action{
		{
			{Label: flag(enabled) + " Work hours", ActionID: "toggle_worktime"},
		},
		{
			{Label: hourLabel("Start", start), ActionID: "set_work_start"},
			{Label: hourLabel("End", end), ActionID: "set_work_end"},
		},
		{
			{Label: "Back", ActionID: "back_to_settings"},
		},
	}
}

func cleanupMenuActions() [][]transport.Action {
	return [][]transport.Action{
		{
			{Label: "Clear queue", ActionID: "clean_queue"},
			{Label: "Clear history", ActionID: "clean_history"},
		},
		{
			{Label: "Reset stats", ActionID: "reset_stats"},
			{Label: "Back", ActionID: "back_to_settings"},
		},
	}
}

func confirmActions(confirmID, cancelID string) [][]transport.Action {
	return [][]transport.Action{
		{
			{Label: "Yes", ActionID: confirmID},
			{Label: "No, cancel", ActionID: cancelID},
		},
	}
}

func flag(on bool) string {
	if on {
		return "[on]"
	}
	return "[off]"
}

func hourLabel(name string, hour int) string {
	return fmt.Sprintf("%s: %02d:00", name, hour)
}
