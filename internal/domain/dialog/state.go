// Package dialog implements the per-user dialogue state machine of the bot.
package dialog

// State identifies one dialogue state. The string values are persisted with
// the session, so renaming a constant is a breaking change for stored
// sessions: unknown values fall into the forced reset-to-menu recovery path.
type State string

const (
	StateMenu                 State = "menu"
	StateSelectingReport      State = "selecting_report"
	StateManagingFinances     State = "managing_finances"
	StateManualEntry          State = "manual_entry"
	StateAwaitingNextEntry    State = "awaiting_next_entry"
	StateAddingIncome         State = "adding_income"
	StateSelectingCategory    State = "selecting_category"
	StateAddingExpenseAmount  State = "adding_expense_amount"
	StateAwaitingExpenseDesc  State = "awaiting_expense_description"
	StateSettingBudget        State = "setting_budget"
	StateAddingGoal           State = "adding_goal"
	StateConfirmQuickExpense  State = "confirm_quick_expense"
	StateConfirmQuickIncome   State = "confirm_quick_income"
	StateGoalValueFromVoice   State = "adding_goal_ask_value_from_voice"
	StateConfirmVoiceGoal     State = "confirm_voice_goal"
	StateManagingCards        State = "managing_cards_menu"
	StateAddingCard           State = "adding_card"
	StateRemovingCard         State = "removing_card"
	StateAddingScheduledDay   State = "adding_scheduled_expense"
)

// AllStates lists every state the machine registers a handler for.
// registerHandlers cross-checks against this list at construction time so a
// new state cannot be added without a handler.
var AllStates = []State{
	StateMenu,
	StateSelectingReport,
	StateManagingFinances,
	StateManualEntry,
	StateAwaitingNextEntry,
	StateAddingIncome,
	StateSelectingCategory,
	StateAddingExpenseAmount,
	StateAwaitingExpenseDesc,
	StateSettingBudget,
	StateAddingGoal,
	StateConfirmQuickExpense,
	StateConfirmQuickIncome,
	StateGoalValueFromVoice,
	StateConfirmVoiceGoal,
	StateManagingCards,
	StateAddingCard,
	StateRemovingCard,
	StateAddingScheduledDay,
}
