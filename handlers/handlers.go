package handlers

import (
	"html/template"
	"net/http"

	"github.com/Sampa-07/cyber-training/auth"
	"github.com/Sampa-07/cyber-training/config"
	"github.com/Sampa-07/cyber-training/db"
	"github.com/Sampa-07/cyber-training/history"
	"github.com/Sampa-07/cyber-training/i18n"
	"github.com/Sampa-07/cyber-training/models"
	"github.com/Sampa-07/cyber-training/progress"
	"github.com/dchest/captcha"
	"github.com/gorilla/csrf"
)

var (
	progressStore *progress.Store
	sampleLog     *history.Log
)

func RegisterHandlers(mux *http.ServeMux) {
	progressStore = progress.NewStore(db.DB)
	sampleLog = history.NewLog(db.DB)

	mux.HandleFunc("/", IndexHandler)
	mux.HandleFunc("/login", LoginHandler)
	mux.HandleFunc("/register", RegisterHandler)
	mux.HandleFunc("/logout", LogoutHandler)
	mux.HandleFunc("/dashboard", DashboardHandler)
	mux.HandleFunc("/module/password", PasswordModuleHandler)
	mux.HandleFunc("/module/phishing", PhishingModuleHandler)
	mux.Handle("/captcha/", captcha.Server(captcha.StdWidth, captcha.StdHeight))

	// Module interactions (JSON)
	mux.HandleFunc("/api/check_password", CheckPasswordHandler)
	mux.HandleFunc("/api/update_password_progress", UpdateProgressHandler("password"))
	mux.HandleFunc("/api/update_phishing_progress", UpdateProgressHandler("phishing"))
	mux.HandleFunc("/health", HealthHandler)
}

func IndexHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if auth.GetUserID(r) != 0 {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	renderTemplate(w, r, "index.html", nil)
}

func LoginHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	lang := i18n.DetectLanguage(r)
	ip := getClientIP(r)
	if !loginLimiter.Allow(ip) {
		auth.Flash(w, r, "danger", i18n.T(lang, "TooManyAttempts"))
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")

	var user models.User
	err := db.DB.Get(&user,
		"SELECT id, username, password_hash FROM users WHERE LOWER(username) = LOWER(?)", username)

	// Timing attack mitigation: always check a hash
	targetHash := user.PasswordHash
	if err != nil {
		targetHash = db.DummyHash
	}
	match := db.CheckPasswordHash(password, targetHash)

	if err != nil || !match {
		loginLimiter.RecordFailure(ip)
		auth.Flash(w, r, "danger", i18n.T(lang, "InvalidCredentials"))
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	loginLimiter.Reset(ip)
	auth.SetSession(w, r, user.ID, user.Username)

	// First login enrolls the user in every known module
	if err := progressStore.EnsureInitialized(user.ID, progress.Modules); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	lang := i18n.DetectLanguage(r)

	if r.Method == http.MethodPost {
		ip := getClientIP(r)
		if !registerLimiter.Allow(ip) {
			auth.Flash(w, r, "danger", i18n.T(lang, "TooManyAttempts"))
			http.Redirect(w, r, "/register", http.StatusSeeOther)
			return
		}

		username := r.FormValue("username")
		password := r.FormValue("password")
		confirm := r.FormValue("confirm")

		switch {
		case username == "" || password == "":
			auth.Flash(w, r, "danger", i18n.T(lang, "MissingFields"))
		case password != confirm:
			auth.Flash(w, r, "danger", i18n.T(lang, "PasswordsDoNotMatch"))
		case len(password) < 8:
			auth.Flash(w, r, "danger", i18n.T(lang, "PasswordTooShort"))
		case config.AppConfig.CaptchaEnabled &&
			!captcha.VerifyString(r.FormValue("captcha_id"), r.FormValue("captcha_solution")):
			auth.Flash(w, r, "danger", i18n.T(lang, "InvalidCaptcha"))
		default:
			hashedPassword, err := db.HashPassword(password)
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			_, err = db.DB.Exec(
				"INSERT INTO users (username, password_hash) VALUES (?, ?)", username, hashedPassword)
			if err != nil {
				registerLimiter.RecordFailure(ip)
				auth.Flash(w, r, "danger", i18n.T(lang, "UsernameAlreadyExists"))
				http.Redirect(w, r, "/register", http.StatusSeeOther)
				return
			}
			registerLimiter.RecordFailure(ip)
			auth.Flash(w, r, "success", i18n.T(lang, "RegistrationSuccess"))
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	data := map[string]any{}
	if config.AppConfig.CaptchaEnabled {
		data["CaptchaID"] = captcha.New()
	}
	renderTemplate(w, r, "register.html", data)
}

func LogoutHandler(w http.ResponseWriter, r *http.Request) {
	auth.ClearSession(w, r)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func DashboardHandler(w http.ResponseWriter, r *http.Request) {
	userID := auth.GetUserID(r)
	if userID == 0 {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	records, err := progressStore.GetAll(userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	percent, err := progressStore.OverallCompletionPercent(userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	renderTemplate(w, r, "dashboard.html", map[string]any{
		"Username":       auth.GetUsername(r),
		"Progress":       records,
		"OverallPercent": percent,
	})
}

func PasswordModuleHandler(w http.ResponseWriter, r *http.Request) {
	userID := auth.GetUserID(r)
	if userID == 0 {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	samples, err := sampleLog.Recent(userID, history.DefaultLimit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	record, err := progressStore.GetOne(userID, "password")
	if err != nil && err != progress.ErrRecordNotFound {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	progressStore.Touch(userID, "password")

	renderTemplate(w, r, "module_password.html", map[string]any{
		"History":  samples,
		"Progress": record,
	})
}

func PhishingModuleHandler(w http.ResponseWriter, r *http.Request) {
	userID := auth.GetUserID(r)
	if userID == 0 {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	record, err := progressStore.GetOne(userID, "phishing")
	if err != nil && err != progress.ErrRecordNotFound {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	progressStore.Touch(userID, "phishing")

	renderTemplate(w, r, "module_phishing.html", map[string]any{
		"Progress": record,
	})
}

func renderTemplate(w http.ResponseWriter, r *http.Request, name string, data any) {
	lang := i18n.DetectLanguage(r)

	funcMap := template.FuncMap{
		"T": func(key string) string {
			return i18n.T(lang, key)
		},
	}

	tmpl, err := template.New(name).Funcs(funcMap).ParseFiles("templates/layout.html", "templates/"+name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	m, ok := data.(map[string]any)
	if !ok {
		m = map[string]any{}
	}
	if _, exists := m["AppName"]; !exists {
		m["AppName"] = config.AppConfig.AppName
	}
	m["Lang"] = lang
	m["csrfField"] = csrf.TemplateField(r)
	// Exposed in a meta tag so fetch() calls can send X-CSRF-Token
	m["csrfToken"] = csrf.Token(r)
	m["Flashes"] = auth.Flashes(w, r)
	m["LoggedIn"] = auth.GetUserID(r) != 0

	tmpl.ExecuteTemplate(w, "layout", m)
}
