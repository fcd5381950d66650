package execshell

// CommandEventObserver receives lifecycle notifications as the executor runs
// external commands. Observers narrate command activity on surfaces other
// than the structured diagnostic log, such as the interactive console.
type CommandEventObserver interface {
	// CommandStarted fires immediately before the command launches.
	CommandStarted(command ShellCommand)
	// CommandCompleted fires after the command ran, whatever its exit code.
	CommandCompleted(command ShellCommand, result ExecutionResult)
	// CommandExecutionFailed fires when the command could not be run at all.
	CommandExecutionFailed(command ShellCommand, failure error)
}

// discardingCommandEventObserver ignores every event.
type discardingCommandEventObserver struct{}

func (discardingCommandEventObserver) CommandStarted(ShellCommand)                    {}
func (discardingCommandEventObserver) CommandCompleted(ShellCommand, ExecutionResult) {}
func (discardingCommandEventObserver) CommandExecutionFailed(ShellCommand, error)     {}
