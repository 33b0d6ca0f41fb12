package components

import (
	"image/color"
	"testing"

	"project-creator/internal/models"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorPickerSwatch(t *testing.T) {
	test.NewTempApp(t)

	cp := NewColorPicker("Primary", "Blue", "500")
	assert.Equal(t, color.NRGBA{R: 0x21, G: 0x96, B: 0xF3, A: 0xFF}, cp.SwatchColor())

	var got []string
	cp.SetChangeHandler(func(palette, hue string) {
		got = append(got, palette+"/"+hue)
	})
	cp.SetSelection("Red", "500")

	palette, hue := cp.Selection()
	assert.Equal(t, "Red", palette)
	assert.Equal(t, "500", hue)
	assert.Equal(t, color.NRGBA{R: 0xF4, G: 0x43, B: 0x36, A: 0xFF}, cp.SwatchColor())
	assert.Contains(t, got, "Red/500")
}

func TestDetailsFormDefaults(t *testing.T) {
	test.NewTempApp(t)

	df := NewDetailsForm()
	d := df.Details()
	assert.Equal(t, "1.0.0", d.ApplicationVersion)
	assert.Equal(t, models.DefaultTheme(), d.Theme)
	assert.Equal(t, models.Extras{}, d.Extras)
	assert.Empty(t, d.Template)
}

func TestDetailsFormCreate(t *testing.T) {
	test.NewTempApp(t)

	df := NewDetailsForm()
	ts := models.DefaultTheme()
	ts.ThemeStyle = "Dark"
	df.Prefill("Grace", "/work", ts, models.Extras{Readme: true})
	df.SetTemplate("Tabs")

	df.titleEntry.SetText("My App")
	df.nameEntry.SetText("MyApp")

	var created *models.ProjectDetails
	df.SetCreateHandler(func(d models.ProjectDetails) {
		created = &d
	})
	test.Tap(df.createButton)

	require.NotNil(t, created)
	assert.Equal(t, "My App", created.ApplicationTitle)
	assert.Equal(t, "MyApp", created.ProjectName)
	assert.Equal(t, "Grace", created.AuthorName)
	assert.Equal(t, "/work", created.ProjectPath)
	assert.Equal(t, "Dark", created.Theme.ThemeStyle)
	assert.Equal(t, "Tabs", created.Template)
	assert.True(t, created.Extras.Readme)
	assert.False(t, created.Extras.License)

	df.ClearProjectFields()
	assert.Empty(t, df.Details().ProjectName)
	assert.Equal(t, "Grace", df.Details().AuthorName)
}

func TestDetailsFormBusy(t *testing.T) {
	test.NewTempApp(t)

	df := NewDetailsForm()
	tapped := 0
	df.SetCreateHandler(func(models.ProjectDetails) { tapped++ })

	df.SetBusy(true)
	test.Tap(df.createButton)
	assert.Equal(t, 0, tapped)
	assert.True(t, df.primary.paletteSelect.Disabled())
	assert.True(t, df.primary.hueSelect.Disabled())
	assert.True(t, df.accent.paletteSelect.Disabled())
	assert.True(t, df.accent.hueSelect.Disabled())
	assert.True(t, df.themeSelect.Disabled())
	assert.True(t, df.browseButton.Disabled())
	assert.True(t, df.licenseCheck.Disabled())

	df.SetBusy(false)
	test.Tap(df.createButton)
	assert.Equal(t, 1, tapped)
	assert.False(t, df.primary.paletteSelect.Disabled())
	assert.False(t, df.accent.hueSelect.Disabled())
	assert.False(t, df.themeSelect.Disabled())
}

func TestTemplateList(t *testing.T) {
	test.NewTempApp(t)

	tl := NewTemplateList()
	var chosen string
	tl.SetSelectHandler(func(name string) { chosen = name })

	tl.SetTemplates([]TemplateInfo{
		{Name: "Blank", PyFiles: 1, Usable: true},
		{Name: "Draft", PyFiles: 2},
	}, "Blank")
	assert.Equal(t, "Blank", tl.Current())

	tl.Highlight(1)
	assert.Equal(t, "Draft", tl.Current())
	tl.Use()
	assert.Empty(t, chosen, "templates without a class mapping cannot be used")

	tl.Highlight(0)
	tl.Use()
	assert.Equal(t, "Blank", chosen)
}

func TestProgressBarClamps(t *testing.T) {
	test.NewTempApp(t)

	pb := NewProgressBar()
	pb.SetProgress("Copying", 1.5)
	assert.Equal(t, 1.0, pb.GetProgress())
	assert.Equal(t, "Copying", pb.GetStage())

	pb.SetVisible(true)
	assert.True(t, pb.IsVisible())
}

func TestStatusBar(t *testing.T) {
	test.NewTempApp(t)

	sb := NewStatusBar()
	sb.SetStatus("Working")
	sb.SetLastProject("Demo", "4.1 kB")
	assert.Equal(t, "Working", sb.GetStatus())
	assert.Equal(t, "Last: Demo (4.1 kB)", sb.GetLastProject())

	sb.Reset()
	assert.Equal(t, "Ready", sb.GetStatus())
}
