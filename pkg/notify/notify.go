package notify

import (
	"fmt"
	"os"
	"os/exec"
	"time"

	"snapbuy/pkg/logger"
)

// NotificationType represents the type of notification
type NotificationType int

const (
	Error NotificationType = iota
	Info
)

const title = "Snapbuy"

// NotifyService surfaces blocking errors and status messages to the user,
// falling back from the configured command through desktop tools to the
// terminal and finally a log file.
type NotifyService struct {
	log           *logger.Logger
	notifyCommand string
}

func NewNotifyService(notifyCommand string, log *logger.Logger) *NotifyService {
	return &NotifyService{
		log:           log,
		notifyCommand: notifyCommand,
	}
}

// Show displays a notification of the specified type
func (n *NotifyService) Show(message string, nType NotificationType) error {
	if n.notifyCommand != "" {
		if err := n.executeNotifyCommand(message, nType); err == nil {
			return nil
		}
		n.log.Warn("Custom notification command failed", "command", n.notifyCommand)
	}

	if err := n.trySystemNotification(message, nType); err == nil {
		return nil
	}

	if isRunningInTerminal() {
		return n.printToTerminal(message, nType)
	}

	return n.writeToLogFile(message, nType)
}

func (n *NotifyService) executeNotifyCommand(message string, nType NotificationType) error {
	typeStr := "ERROR"
	if nType == Info {
		typeStr = "INFO"
	}
	cmd := exec.Command("sh", "-c", fmt.Sprintf("%s '%s' '%s'", n.notifyCommand, typeStr, message))
	return cmd.Run()
}

func (n *NotifyService) trySystemNotification(message string, nType NotificationType) error {
	urgency := "normal"
	heading := title
	if nType == Error {
		urgency = "critical"
		heading += " Error"
	}

	for _, tool := range []string{"dunstify", "notify-send"} {
		if _, err := exec.LookPath(tool); err != nil {
			continue
		}
		if err := exec.Command(tool, "-u", urgency, heading, message).Run(); err == nil {
			n.log.Debug("Notification sent", "tool", tool, "type", nType)
			return nil
		}
	}
	return fmt.Errorf("no notification tools available")
}

func (n *NotifyService) printToTerminal(message string, nType NotificationType) error {
	colorCode := "\x1b[32m"
	prefix := title + " - Info"
	if nType == Error {
		colorCode = "\x1b[31m"
		prefix = title + " - Error"
	}
	fmt.Fprintf(os.Stderr, "%s%s: %s\x1b[0m\n", colorCode, prefix, message)
	return nil
}

func (n *NotifyService) writeToLogFile(message string, nType NotificationType) error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	typeStr := "INFO"
	if nType == Error {
		typeStr = "ERROR"
	}

	logPath := fmt.Sprintf("%s/.snapbuy-notifications.log", homeDir)
	logMessage := fmt.Sprintf("[%s] %s: %s\n",
		time.Now().Format("2006-01-02 15:04:05"), typeStr, message)

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open notification log: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(logMessage); err != nil {
		return fmt.Errorf("failed to write notification log: %w", err)
	}
	return nil
}

func isRunningInTerminal() bool {
	fileInfo, err := os.Stderr.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
