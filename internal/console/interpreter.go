package console

import (
	"log"
	"strings"

	"github.com/watchfire-io/autodeploy/internal/models"
)

// Command is a recognized console command.
type Command int

const (
	CommandUnknown Command = iota
	CommandHelp
	CommandClear
	CommandStatus
	CommandAnalyze
	CommandDeploy
)

func (c Command) String() string {
	switch c {
	case CommandHelp:
		return "help"
	case CommandClear:
		return "clear"
	case CommandStatus:
		return "status"
	case CommandAnalyze:
		return "analyze"
	case CommandDeploy:
		return "deploy"
	}
	return "unknown"
}

// Console messages.
const (
	BusyMessage         = "Agent is busy. Please wait."
	HelpMessage         = "Available commands: deploy, status, analyze, clear"
	UnrecognizedPrefix  = "Command not recognized: "
	StatusMessagePrefix = "Agent status: "
	EchoPrefix          = "> "
)

// Normalize trims and lowercases raw input for matching.
func Normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Parse matches raw input to a command. Exact words are checked first;
// anything containing "deploy" is a deploy.
func Parse(raw string) Command {
	text := Normalize(raw)
	switch text {
	case "help":
		return CommandHelp
	case "clear":
		return CommandClear
	case "status":
		return CommandStatus
	case "analyze":
		return CommandAnalyze
	}
	if strings.Contains(text, "deploy") {
		return CommandDeploy
	}
	return CommandUnknown
}

// Submit interprets one line of input. Its effects are observed through the
// log and the status. Blank input is ignored.
//
// The echo is always written first, even when the command is then rejected
// because the agent is busy. Rejected commands are dropped, not queued.
func (s *Session) Submit(raw string) {
	if strings.TrimSpace(raw) == "" {
		return
	}
	s.append(EchoPrefix+raw, models.LogLevelInfo)

	if s.Busy() {
		log.Printf("[agent] rejected %q: agent %s", raw, s.Status().State)
		s.append(BusyMessage, models.LogLevelWarning)
		return
	}

	switch Parse(raw) {
	case CommandHelp:
		s.append(HelpMessage, models.LogLevelInfo)
	case CommandClear:
		s.clear()
	case CommandStatus:
		s.append(StatusMessagePrefix+s.Status().String(), models.LogLevelInfo)
	case CommandAnalyze:
		s.start(AnalyzePipeline)
	case CommandDeploy:
		s.start(DeployPipeline)
	default:
		s.append(UnrecognizedPrefix+raw, models.LogLevelError)
	}
}
