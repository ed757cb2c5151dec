package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// AuthModalState drives the login/register form. Registering never logs
// the user in; on success the form flips back to login mode with the
// username kept.
type AuthModalState struct {
	Active       bool
	RegisterMode bool
	FocusIdx     int // 0 username, 1 password
	Username     textinput.Model
	Password     textinput.Model
	Busy         bool
	Notice       string
}

func NewAuthModalState() AuthModalState {
	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 64

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return AuthModalState{
		Username: username,
		Password: password,
	}
}

func (s *AuthModalState) Open(registerMode bool) {
	s.Active = true
	s.RegisterMode = registerMode
	s.Notice = ""
	s.Busy = false
	s.FocusIdx = 0
	s.Username.Reset()
	s.Password.Reset()
	s.Username.Focus()
	s.Password.Blur()
}

func (s *AuthModalState) Close() {
	s.Active = false
	s.Username.Blur()
	s.Password.Blur()
	s.Password.Reset()
}

// SwitchToLogin returns to login mode keeping the username, as after a
// successful registration.
func (s *AuthModalState) SwitchToLogin(username string) {
	s.RegisterMode = false
	s.Username.SetValue(username)
	s.Password.Reset()
	s.FocusIdx = 1
	s.Username.Blur()
	s.Password.Focus()
}

func (s *AuthModalState) toggleFocus() {
	s.FocusIdx = (s.FocusIdx + 1) % 2
	if s.FocusIdx == 0 {
		s.Username.Focus()
		s.Password.Blur()
	} else {
		s.Username.Blur()
		s.Password.Focus()
	}
}

func (a AppView) handleAuthModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.authModal.Busy {
		return a, nil
	}

	switch msg.String() {
	case "esc":
		a.authModal.Close()
		return a, nil

	case "tab", "shift+tab", "up", "down":
		a.authModal.toggleFocus()
		return a, nil

	case "ctrl+r":
		a.authModal.RegisterMode = !a.authModal.RegisterMode
		a.authModal.Notice = ""
		return a, nil

	case "enter":
		username := strings.TrimSpace(a.authModal.Username.Value())
		password := a.authModal.Password.Value()
		if username == "" || password == "" {
			a.authModal.Notice = "Username and password are required."
			return a, nil
		}
		a.authModal.Busy = true
		a.authModal.Notice = ""
		if a.authModal.RegisterMode {
			return a, a.dataModel.RegisterCmd(username, password)
		}
		return a, a.dataModel.LoginCmd(username, password)
	}

	var cmd tea.Cmd
	if a.authModal.FocusIdx == 0 {
		a.authModal.Username, cmd = a.authModal.Username.Update(msg)
	} else {
		a.authModal.Password, cmd = a.authModal.Password.Update(msg)
	}
	return a, cmd
}

func (a AppView) renderAuthModal() string {
	modalWidth := 50
	if a.width < modalWidth+10 {
		modalWidth = a.width - 10
	}

	title := "Log In"
	action := "Log in"
	if a.authModal.RegisterMode {
		title = "Register"
		action = "Create account"
	}

	fieldStyle := lipgloss.NewStyle().Width(modalWidth).PaddingLeft(2)

	var lines []string
	lines = append(lines, fieldStyle.Render("Username: "+a.authModal.Username.View()))
	lines = append(lines, fieldStyle.Render("Password: "+a.authModal.Password.View()))

	if a.authModal.Busy {
		lines = append(lines, "")
		lines = append(lines, fieldStyle.Render(a.loadingSpinner.View()+" "+action+"..."))
	}
	if a.authModal.Notice != "" {
		noticeStyle := DimStyle
		if !a.authModal.Busy && !strings.HasPrefix(a.authModal.Notice, "Account created") {
			noticeStyle = ErrorStyle
		}
		lines = append(lines, "")
		for _, line := range strings.Split(a.authModal.Notice, "\n") {
			lines = append(lines, fieldStyle.Render(noticeStyle.Render(line)))
		}
	}

	footer := FormatFooter("Enter", action, "Tab", "Next field", "ctrl+r", "Login/Register", "Esc", "Cancel")
	return RenderModal(title, lines, footer, ModalTypeInfo, modalWidth, a.width, a.height)
}
