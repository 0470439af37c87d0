package entity

// ThemeMode modo de tema de dos valores. Exactamente una paleta está activa a
// la vez: cambiar de tema intercambia la paleta completa de forma atómica,
// nunca mezcla colores de ambas.
type ThemeMode string

const (
	ThemeLight ThemeMode = "light"
	ThemeDark  ThemeMode = "dark"
)

// ParseTheme normaliza el valor recibido; cualquier cosa distinta de "light"
// se trata como "dark" (el tema inicial de la aplicación).
func ParseTheme(s string) ThemeMode {
	if s == string(ThemeLight) {
		return ThemeLight
	}
	return ThemeDark
}

// Palette conjunto fijo de colores con nombre (hex #RRGGBB, salvo Shadow que
// guarda una sombra CSS sólo con fines informativos).
type Palette struct {
	BG       string
	Surface  string
	Text     string
	Subtext  string
	Line     string
	LineSoft string
	AccentA  string
	AccentB  string
	Shadow   string
}

var darkPalette = Palette{
	BG:       "#0B0B0E",
	Surface:  "#111317",
	Text:     "#E5E7EB",
	Subtext:  "#A3A3A3",
	Line:     "#25272B",
	LineSoft: "#1C1F24",
	AccentA:  "#7c5cff",
	AccentB:  "#00e7a7",
	Shadow:   "0 10px 30px rgba(0,0,0,.45)",
}

var lightPalette = Palette{
	BG:       "#FFFFFF",
	Surface:  "#FFFFFF",
	Text:     "#111827",
	Subtext:  "#6B7280",
	Line:     "#E5E7EB",
	LineSoft: "#F3F4F6",
	AccentA:  "#7c5cff",
	AccentB:  "#00e7a7",
	Shadow:   "0 10px 30px rgba(16,24,40,.1)",
}

// Palette devuelve la paleta activa para el modo.
func (m ThemeMode) Palette() Palette {
	if m == ThemeLight {
		return lightPalette
	}
	return darkPalette
}

// ChipBG fondo de los chips de proceso, dependiente del tema.
func (m ThemeMode) ChipBG() string {
	if m == ThemeLight {
		return "#F3F4F6"
	}
	return "#15171C"
}
