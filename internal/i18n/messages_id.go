package i18n

import (
	"golang.org/x/text/language"

	"github.com/nhle/todolist/internal/apperr"
)

func init() {
	register(language.Indonesian, map[string]string{
		KeyWarningTitle:         "Peringatan",
		KeyErrorTitle:           "Error",
		KeyOKButton:             "OK",
		KeyLoginSuccessTitle:    "Login Berhasil",
		KeyLoginSuccessBody:     "Selamat datang %s",
		KeyRegisterSuccessTitle: "Registrasi Berhasil",
		KeyRegisterSuccessBody:  "Akun %s sudah dibuat. Silakan login.",
		KeyConfirmTitle:         "Konfirmasi",
		KeyDeleteTodoBody:       "Hapus todo ini?",
		KeyCancel:               "Batal",
		KeyDelete:               "Hapus",

		KeyAppTitle:     "TODO App",
		KeyUsername:     "Username",
		KeyPassword:     "Password",
		KeyLogin:        "Login",
		KeyRegister:     "Register",
		KeyTodosTitle:   "Daftar Todo",
		KeyTodosEmpty:   "Belum ada todo.",
		KeyAddTodoTitle: "Tambah Todo",
		KeyDescription:  "Deskripsi",
		KeyConfirm:      "Confirm",
		KeyClose:        "Close",
		KeyLoading:      "Memuat...",
		KeySaving:       "Menyimpan...",
		KeyLoggedInAs:   "pengguna #%d",
		KeyNotLoggedIn:  "belum login",
		KeyPaletteTitle: "Palet Perintah",
		KeyHelpTitle:    "Pintasan Keyboard",

		string(apperr.CodeUnknown):             "Terjadi kesalahan.",
		string(apperr.CodeFieldsRequired):      "Username & password wajib diisi.",
		string(apperr.CodeDescriptionRequired): "Deskripsi tidak boleh kosong.",
		string(apperr.CodeInvalidCredentials):  "Username atau password salah.",
		string(apperr.CodeUsernameTaken):       "Username sudah terpakai.",
		string(apperr.CodeTodoLoadFailed):      "Gagal memuat todo.",
		string(apperr.CodeTodoAddFailed):       "Gagal menambah todo.",
		string(apperr.CodeTodoUpdateFailed):    "Gagal memperbarui todo.",
		string(apperr.CodeTodoDeleteFailed):    "Gagal menghapus todo.",
	})
}
