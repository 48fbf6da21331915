// Package golden holds preference holders together with their committed
// generated accessors. Tests check that the generator still produces the
// committed code and that the code works against the runtime.
package golden

//go:generate go run ../../../../cmd/prefsgen -dir .

// UserSettings holds per-user display choices.
//
//prefs:holder user_store
type UserSettings struct {
	username      string   `pref:",default=guest"`
	Theme         string   `pref:"theme,default=light"`
	FontSize      int32    `pref:"font_size,default=14"`
	LastSeen      int64    `pref:"last_seen"`
	Volume        float32  `pref:"volume,default=0.5"`
	Notifications bool     `pref:"notifications,default=true"`
	Tags          []string `pref:"tags,default=sports, news"`

	Draft string
}

// Session holds state that survives a restart.
//
//prefs:holder
type Session struct {
	token  string `pref:""`
	Visits int64  `pref:"visits,default=1"`
}
