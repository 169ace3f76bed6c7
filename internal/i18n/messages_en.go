package i18n

import (
	"golang.org/x/text/language"

	"github.com/nhle/todolist/internal/apperr"
)

func init() {
	register(language.English, map[string]string{
		KeyWarningTitle:         "Warning",
		KeyErrorTitle:           "Error",
		KeyOKButton:             "OK",
		KeyLoginSuccessTitle:    "Login successful",
		KeyLoginSuccessBody:     "Welcome %s",
		KeyRegisterSuccessTitle: "Registered",
		KeyRegisterSuccessBody:  "Account %s was created. You can log in now.",
		KeyConfirmTitle:         "Confirm",
		KeyDeleteTodoBody:       "Delete this todo?",
		KeyCancel:               "Cancel",
		KeyDelete:               "Delete",

		KeyAppTitle:     "TODO App",
		KeyUsername:     "Username",
		KeyPassword:     "Password",
		KeyLogin:        "Login",
		KeyRegister:     "Register",
		KeyTodosTitle:   "Todo list",
		KeyTodosEmpty:   "No todos yet.",
		KeyAddTodoTitle: "Add todo",
		KeyDescription:  "Description",
		KeyConfirm:      "Confirm",
		KeyClose:        "Close",
		KeyLoading:      "Loading...",
		KeySaving:       "Saving...",
		KeyLoggedInAs:   "user #%d",
		KeyNotLoggedIn:  "not logged in",
		KeyPaletteTitle: "Command Palette",
		KeyHelpTitle:    "Keyboard Shortcuts",

		string(apperr.CodeUnknown):             "Something went wrong.",
		string(apperr.CodeFieldsRequired):      "Username & password are required.",
		string(apperr.CodeDescriptionRequired): "Description must not be empty.",
		string(apperr.CodeInvalidCredentials):  "Invalid username or password.",
		string(apperr.CodeUsernameTaken):       "Username is already taken.",
		string(apperr.CodeTodoLoadFailed):      "Failed to load todos.",
		string(apperr.CodeTodoAddFailed):       "Failed to add todo.",
		string(apperr.CodeTodoUpdateFailed):    "Failed to update todo.",
		string(apperr.CodeTodoDeleteFailed):    "Failed to delete todo.",
	})
}
