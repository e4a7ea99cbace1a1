package service

import (
	"context"
	"log"

	"fotofocus-backend/internal/model"
	"fotofocus-backend/internal/repository"
)

// LessonService serves the built-in photography curriculum.
type LessonService struct {
	lessonRepo repository.LessonRepository
}

func NewLessonService(lessonRepo repository.LessonRepository) *LessonService {
	return &LessonService{lessonRepo: lessonRepo}
}

func (s *LessonService) List(ctx context.Context) ([]model.Lesson, error) {
	return s.lessonRepo.List(ctx)
}

func (s *LessonService) Get(ctx context.Context, id int64) (*model.Lesson, error) {
	return s.lessonRepo.GetByID(ctx, id)
}

// SeedDefaults inserts the stock lessons, skipping any slug that already
// exists so re-running at boot is safe.
func (s *LessonService) SeedDefaults(ctx context.Context) error {
	if err := s.lessonRepo.Seed(ctx, defaultLessons); err != nil {
		return err
	}
	log.Printf("[LessonService] seeded default lessons")
	return nil
}

var defaultLessons = []model.Lesson{
	{
		Slug:     "camera-modes",
		Title:    "Camera Modes (Auto, P, A/Av, S/Tv, M)",
		Order:    1,
		ImageURL: "https://picsum.photos/id/250/900/500",
		Body: `Learn what each mode does and when to use it.

- Auto: camera decides everything (good for quick snapshots).
- P (Program): camera sets exposure, you can tweak ISO / exposure compensation.
- A/Av (Aperture Priority): you set aperture (background blur), camera sets shutter.
- S/Tv (Shutter Priority): you set shutter (motion), camera sets aperture.
- M (Manual): you set both shutter + aperture (full control).

Quick tips:
- Start with A/Av for portraits and general photography.
- Use S/Tv for action (sports, kids running, pets).
- Use M when light is tricky or you want consistency.

Practice:
1) Take the same scene in A/Av at f/2.8, f/5.6, f/11.
2) Try exposure compensation: -1, 0, +1 and compare.`,
	},
	{
		Slug:     "exposure-triangle",
		Title:    "Exposure Triangle: Aperture, Shutter, ISO",
		Order:    2,
		ImageURL: "https://picsum.photos/id/251/900/500",
		Body: `Exposure (brightness) comes from 3 settings:

1) Aperture (f-number)
- Controls light + background blur.
- Lower f-number = more light + more blur.

2) Shutter Speed
- Controls light + motion blur.
- Faster = freezes action. Slower = shows motion.

3) ISO
- Controls brightness by boosting sensor sensitivity.
- Higher ISO = brighter but more noise/grain.

Simple rules:
- Too dark? Open aperture OR slow shutter OR raise ISO.
- Motion blur? Use faster shutter (and raise ISO if needed).
- Too noisy? Lower ISO and compensate with aperture/shutter.

Practice:
Take the same indoor photo using ISO 200, 800, and 1600.
Compare noise vs sharpness.`,
	},
	{
		Slug:     "aperture-bokeh",
		Title:    "Aperture & Background Blur (Depth of Field)",
		Order:    3,
		ImageURL: "https://picsum.photos/id/10/900/500",
		Body: `Aperture affects BOTH light and depth of field (how much is in focus).

Common ranges:
- f/1.8 - f/2.8: strong background blur (portraits)
- f/4 - f/5.6: balanced blur + sharpness (everyday)
- f/8 - f/11: more in focus (landscapes)

What changes blur?
- Lower f-number = blurrier background.
- Closer subject = blurrier background.
- Farther background = blurrier background.
- Longer focal length = blurrier background.

Practice:
Take 3 portraits at f/2.0, f/4.0, f/8.0.
Keep distance similar and compare the background.`,
	},
	{
		Slug:     "shutter-speed-motion",
		Title:    "Shutter Speed & Motion (Freeze vs Blur)",
		Order:    4,
		ImageURL: "https://picsum.photos/id/253/900/500",
		Body: `Shutter speed controls how motion looks.

Typical shutter speeds:
- 1/1000 - 1/2000: sports, birds, fast action
- 1/500: running / jumping
- 1/250: walking people
- 1/125: casual handheld
- 1/60 and slower: risk of handshake blur
- 1-10 seconds: night / light trails (tripod)

Creative technique: Panning
- Use 1/30-1/60 and move your camera with the subject.
- Subject stays sharper, background blurs.

Practice:
1) Take a moving subject at 1/1000 (freeze).
2) Try panning at 1/30 and see the motion effect.`,
	},
	{
		Slug:     "iso-noise",
		Title:    "ISO & Noise (How to keep photos clean)",
		Order:    5,
		ImageURL: "https://picsum.photos/id/254/900/500",
		Body: `ISO brightens your photo but adds noise/grain.

Good starting points:
- Bright daylight: ISO 100-200
- Cloudy / shade: ISO 200-800
- Indoor: ISO 800-1600
- Night: ISO 1600-6400 (depends on camera)

Important:
- A sharp noisy photo is better than a blurry clean photo.
- Don't be afraid of ISO, just avoid going higher than needed.

Tip:
Enable Auto ISO with a maximum:
- Mid phones/cameras: max ISO 1600-3200
- Better cameras: max ISO 6400+

Practice:
Take the same scene at ISO 100, 800, 3200 and zoom in to compare noise.`,
	},
	{
		Slug:     "autofocus-modes",
		Title:    "Autofocus Modes (AF-S, AF-C) + Focus Areas",
		Order:    6,
		ImageURL: "https://picsum.photos/id/20/900/500",
		Body: `Getting focus right makes your photos look professional.

Focus modes:
- AF-S (Single): best for still subjects (people posing, objects).
- AF-C (Continuous): best for moving subjects (sports, pets, kids).
- Face/Eye AF: best for portraits (keeps eyes sharp).

Focus area types:
- Single point: most accurate
- Zone: good for moving subjects
- Wide/Auto: fast, less precise

Practice:
1) Use AF-S + single point on a still object.
2) Use AF-C + zone on someone walking toward you.
Check which is sharper.`,
	},
	{
		Slug:     "composition-rule-of-thirds",
		Title:    "Composition Basics (Rule of Thirds, Leading Lines)",
		Order:    7,
		ImageURL: "https://picsum.photos/id/30/900/500",
		Body: `Composition is how you arrange elements in the frame.

Fast improvements:
- Rule of thirds: place subject on 1/3 lines (use grid).
- Leading lines: roads/rails/walls guide the eye.
- Framing: windows/doors/arches frame your subject.
- Clean background: avoid distractions behind the subject.
- Symmetry: great for architecture and reflections.

Practice:
Take 10 photos: 5 centered, 5 rule-of-thirds.
Compare which looks more interesting.`,
	},
	{
		Slug:     "white-balance-color",
		Title:    "White Balance & Color (Fix yellow/blue photos)",
		Order:    8,
		ImageURL: "https://picsum.photos/id/257/900/500",
		Body: `White balance controls the color temperature of your photo.

Common problems:
- Indoor lights look too yellow/orange.
- Shade looks too blue.

Options:
- Auto WB: usually ok
- Daylight / Cloudy / Tungsten: quick fixes
- Kelvin (K): manual control

Simple Kelvin guide:
- Daylight: ~5500K
- Cloudy: ~6500K
- Tungsten indoor: ~3200K-4500K

Practice:
Shoot indoors with Auto WB and Tungsten WB.
See which has more natural colors.`,
	},
	{
		Slug:     "metering-exposure-comp",
		Title:    "Metering & Exposure Compensation (+/-)",
		Order:    9,
		ImageURL: "https://picsum.photos/id/40/900/500",
		Body: `Sometimes the camera guesses the wrong brightness.

Use exposure compensation (EV):
- Bright background (sky): subject too dark, try +0.7 to +1.3 EV
- Dark scene: camera brightens too much, try -0.7 EV

Metering modes:
- Matrix/Evaluative: general use
- Spot: expose for one specific area (face, bright object)

Practice:
Photograph a person with bright sky behind at 0 EV and +1 EV.
Compare the face brightness.`,
	},
	{
		Slug:     "raw-vs-jpeg-editing",
		Title:    "RAW vs JPEG + Basic Editing",
		Order:    10,
		ImageURL: "https://picsum.photos/id/259/900/500",
		Body: `JPEG:
- Smaller files
- Ready to share
- Less editing flexibility

RAW:
- Larger files
- Best for editing (recover highlights/shadows)
- Better color control

Simple editing order:
1) Exposure
2) Highlights / Shadows
3) White balance
4) Contrast
5) Crop / straighten

Tip:
Avoid over-saturation and over-sharpening. Natural looks better.`,
	},
	{
		Slug:     "lenses-focal-length",
		Title:    "Lens & Focal Length Basics (What to use when)",
		Order:    11,
		ImageURL: "https://picsum.photos/id/50/900/500",
		Body: `Focal length changes perspective and framing.

Common focal lengths:
- 14-24mm: wide landscapes / architecture
- 35mm: street / everyday
- 50mm: natural perspective
- 85mm: portraits (nice compression)
- 100-200mm: sports / wildlife

Tip for portraits:
Use 50mm-85mm and step back a bit for more flattering faces.

Practice:
Take the same subject using wide vs zoom (or 1x vs 3x).
Notice how background and face proportions change.`,
	},
	{
		Slug:     "night-photography",
		Title:    "Night Photography (Handheld vs Tripod)",
		Order:    12,
		ImageURL: "https://picsum.photos/id/261/900/500",
		Body: `Night photos need more light, so you must choose a strategy.

Handheld night:
- Aperture: as wide as possible (f/1.8-2.8)
- Shutter: 1/60 or faster (avoid shake)
- ISO: 1600-3200+

Tripod night:
- ISO: 100-400
- Shutter: 1-10 seconds
- Aperture: f/4-f/8
- Use timer to avoid camera shake

Practice:
Shoot a street scene handheld and then on a tripod.
Compare sharpness and noise.`,
	},
}
