// Package catalog holds the static exercise catalog. The data is compiled in:
// the catalog never changes at runtime and the planner only reads it.
package catalog

import (
	"slices"
	"strings"

	"github.com/flexlog/flexlog/internal/workout"
)

// Catalog is an in-memory exercise lookup implementing workout.Catalog.
type Catalog struct {
	byID map[string]workout.Exercise
}

// Default returns the built-in catalog.
func Default() *Catalog {
	byID := make(map[string]workout.Exercise, len(exercises))
	for _, exercise := range exercises {
		byID[exercise.ID] = exercise
	}
	return &Catalog{byID: byID}
}

// ExerciseOf implements workout.Catalog.
func (c *Catalog) ExerciseOf(id string) (workout.Exercise, bool) {
	exercise, ok := c.byID[id]
	return exercise, ok
}

// All returns every exercise sorted by name.
func (c *Catalog) All() []workout.Exercise {
	all := make([]workout.Exercise, 0, len(c.byID))
	for _, exercise := range c.byID {
		all = append(all, exercise)
	}
	slices.SortFunc(all, func(a, b workout.Exercise) int {
		return strings.Compare(a.Name, b.Name)
	})
	return all
}

// ByMuscleGroup returns the exercises training a muscle group, sorted by name.
func (c *Catalog) ByMuscleGroup(group workout.MuscleGroup) []workout.Exercise {
	var matches []workout.Exercise
	for _, exercise := range c.byID {
		if exercise.MuscleGroup == group {
			matches = append(matches, exercise)
		}
	}
	slices.SortFunc(matches, func(a, b workout.Exercise) int {
		return strings.Compare(a.Name, b.Name)
	})
	return matches
}

//nolint:gochecknoglobals // compiled-in catalog data.
var exercises = []workout.Exercise{
	// Chest
	{
		ID: "sm-inc-bp", Name: "Smith Machine Incline Bench Press (30°)",
		MuscleGroup: workout.MuscleGroupChest, Equipment: workout.EquipmentSmith, IsCompound: true,
		DefaultAlternatives: []string{"db-inc-bp", "bb-flat-bp"},
		DescriptionMarkdown: "Press from a 30° incline bench inside the Smith machine. The fixed bar path lets you push close to failure without a spotter.\n\n- Touch the bar just below the collarbone\n- Keep the shoulder blades pinned to the bench",
	},
	{
		ID: "sm-flat-bp", Name: "Smith Machine Flat Bench Press",
		MuscleGroup: workout.MuscleGroupChest, Equipment: workout.EquipmentSmith, IsCompound: true,
		DefaultAlternatives: []string{"bb-flat-bp", "db-inc-bp"},
		DescriptionMarkdown: "Flat pressing on the Smith machine. Set the bench so the bar touches mid-chest at the bottom of each rep.",
	},
	{
		ID: "db-inc-bp", Name: "Incline Dumbbell Bench Press (30°)",
		MuscleGroup: workout.MuscleGroupChest, Equipment: workout.EquipmentDumbbell, IsCompound: true,
		DefaultAlternatives: []string{"sm-inc-bp", "bb-flat-bp"},
		DescriptionMarkdown: "Press two dumbbells from a 30° incline. The free weights demand more stabilisation than a bar, so expect to use less load.",
	},
	{
		ID: "bb-flat-bp", Name: "Barbell Bench Press",
		MuscleGroup: workout.MuscleGroupChest, Equipment: workout.EquipmentBarbell, IsCompound: true,
		DefaultAlternatives: []string{"sm-flat-bp", "db-inc-bp"},
		DescriptionMarkdown: "The classic flat barbell press.\n\n- Feet planted, slight arch, bar over mid-chest\n- Lower under control and press to lockout",
	},
	{
		ID: "db-fly-flat", Name: "Flat Dumbbell Flyes",
		MuscleGroup: workout.MuscleGroupChest, Equipment: workout.EquipmentDumbbell, IsCompound: false,
		DefaultAlternatives: []string{"pec-deck", "cab-fly-stand"},
		DescriptionMarkdown: "Open the arms wide with a soft elbow bend and squeeze the dumbbells back together over the chest. Stretch-focused isolation work.",
	},
	{
		ID: "pec-deck", Name: "Pec Deck Machine Fly",
		MuscleGroup: workout.MuscleGroupChest, Equipment: workout.EquipmentMachine, IsCompound: false,
		DefaultAlternatives: []string{"db-fly-flat", "cab-fly-stand"},
		DescriptionMarkdown: "Machine fly with constant tension through the whole range. Adjust the seat so the handles sit at chest height.",
	},
	{
		ID: "cab-fly-stand", Name: "Standing Cable Fly",
		MuscleGroup: workout.MuscleGroupChest, Equipment: workout.EquipmentCable, IsCompound: false,
		DefaultAlternatives: []string{"pec-deck", "db-fly-flat"},
		DescriptionMarkdown: "Cable fly from a staggered stance. Bring the handles together in front of the sternum and resist the return.",
	},

	// Shoulders
	{
		ID: "bb-ohp", Name: "Barbell Overhead Press",
		MuscleGroup: workout.MuscleGroupShoulders, Equipment: workout.EquipmentBarbell, IsCompound: true,
		DefaultAlternatives: []string{"db-lat-raise"},
		DescriptionMarkdown: "Standing overhead press.\n\n- Brace the glutes and core before the bar leaves the rack\n- Press slightly back so the bar finishes over the mid-foot",
	},
	{
		ID: "db-lat-raise", Name: "Dumbbell Lateral Raise",
		MuscleGroup: workout.MuscleGroupShoulders, Equipment: workout.EquipmentDumbbell, IsCompound: false,
		DefaultAlternatives: []string{"cab-lat-raise-front", "cab-lat-raise-behind"},
		DescriptionMarkdown: "Raise the dumbbells out to shoulder height with a slight forward lean. Light weight, strict form; the side delts do not need much load.",
	},
	{
		ID: "cab-lat-raise-front", Name: "Single-Arm Cable Lateral Raise (In Front)",
		MuscleGroup: workout.MuscleGroupShoulders, Equipment: workout.EquipmentCable, IsCompound: false,
		DefaultAlternatives: []string{"db-lat-raise"},
		DescriptionMarkdown: "Cable lateral raise with the cable running in front of the body. Constant tension from the very bottom of the range.",
	},
	{
		ID: "cab-lat-raise-behind", Name: "Single-Arm Cable Lateral Raise (Behind)",
		MuscleGroup: workout.MuscleGroupShoulders, Equipment: workout.EquipmentCable, IsCompound: false,
		DefaultAlternatives: []string{"db-lat-raise"},
		DescriptionMarkdown: "Cable lateral raise with the cable behind the body, biasing the rear of the side delt.",
	},
	{
		ID: "db-lat-raise-inc", Name: "Single-Arm DB Lateral Raise (Incline)",
		MuscleGroup: workout.MuscleGroupShoulders, Equipment: workout.EquipmentDumbbell, IsCompound: false,
		DefaultAlternatives: []string{"db-lat-raise"},
		DescriptionMarkdown: "Lateral raise lying sideways on an incline bench, loading the bottom of the range that a standing raise misses.",
	},
	{
		ID: "cab-rev-fly", Name: "Cable Reverse Fly",
		MuscleGroup: workout.MuscleGroupShoulders, Equipment: workout.EquipmentCable, IsCompound: false,
		DefaultAlternatives: []string{"mac-rev-fly"},
		DescriptionMarkdown: "Cross-cable reverse fly for the rear delts. Keep the arms long and pull apart, not back.",
	},
	{
		ID: "mac-rev-fly", Name: "Rear Delt Machine Fly",
		MuscleGroup: workout.MuscleGroupShoulders, Equipment: workout.EquipmentMachine, IsCompound: false,
		DefaultAlternatives: []string{"cab-rev-fly"},
		DescriptionMarkdown: "Reverse pec-deck for the rear delts. Chest against the pad, open the handles wide.",
	},
	{
		ID: "bb-up-row", Name: "Barbell Upright Row",
		MuscleGroup: workout.MuscleGroupShoulders, Equipment: workout.EquipmentBarbell, IsCompound: true,
		DefaultAlternatives: []string{"db-lat-raise"},
		DescriptionMarkdown: "Pull the bar up along the body to lower-chest height, elbows leading. Stop below shoulder height if the shoulders complain.",
	},

	// Triceps
	{
		ID: "cab-tri-push", Name: "Cable Tricep Pushdown",
		MuscleGroup: workout.MuscleGroupTriceps, Equipment: workout.EquipmentCable, IsCompound: false,
		DefaultAlternatives: []string{"skull-crusher"},
		DescriptionMarkdown: "Pushdown with rope or bar. Elbows pinned to the sides; only the forearms move.",
	},
	{
		ID: "cab-oh-ext", Name: "Cable Overhead Tricep Extension",
		MuscleGroup: workout.MuscleGroupTriceps, Equipment: workout.EquipmentCable, IsCompound: false,
		DefaultAlternatives: []string{"db-oh-ext-seat"},
		DescriptionMarkdown: "Overhead rope extension facing away from the stack. Trains the long head of the triceps at a deep stretch.",
	},
	{
		ID: "db-oh-ext-seat", Name: "Seated DB Overhead Extension (Both Hands)",
		MuscleGroup: workout.MuscleGroupTriceps, Equipment: workout.EquipmentDumbbell, IsCompound: false,
		DefaultAlternatives: []string{"cab-oh-ext"},
		DescriptionMarkdown: "Hold one dumbbell overhead with both hands and lower it behind the head. Keep the elbows pointing forward.",
	},
	{
		ID: "db-oh-ext-1h", Name: "Seated DB Overhead Extension (1 Hand)",
		MuscleGroup: workout.MuscleGroupTriceps, Equipment: workout.EquipmentDumbbell, IsCompound: false,
		DefaultAlternatives: []string{"db-oh-ext-seat"},
		DescriptionMarkdown: "Single-arm overhead extension. Lighter than the two-hand version but easier to keep strict.",
	},
	{
		ID: "skull-crusher", Name: "Skull Crusher",
		MuscleGroup: workout.MuscleGroupTriceps, Equipment: workout.EquipmentBarbell, IsCompound: false,
		DefaultAlternatives: []string{"cab-tri-push"},
		DescriptionMarkdown: "Lying extension with an EZ or straight bar, lowering to the forehead or just behind it. Keep the upper arms vertical.",
	},
	{
		ID: "cg-bp", Name: "Close-Grip Bench Press",
		MuscleGroup: workout.MuscleGroupTriceps, Equipment: workout.EquipmentBarbell, IsCompound: true,
		DefaultAlternatives: []string{"cab-tri-push"},
		DescriptionMarkdown: "Bench press with a shoulder-width grip and elbows tucked, shifting the work from chest to triceps.",
	},

	// Lats
	{
		ID: "cab-row-1h-kneel", Name: "Single-Arm Kneeling Cable Row",
		MuscleGroup: workout.MuscleGroupLats, Equipment: workout.EquipmentCable, IsCompound: true,
		DefaultAlternatives: []string{"lm-row-1h"},
		DescriptionMarkdown: "Half-kneeling row from a low cable, pulling towards the hip. The kneeling position blocks momentum from the lower back.",
	},
	{
		ID: "cab-lat-pd", Name: "Cable Lat Pulldown",
		MuscleGroup: workout.MuscleGroupLats, Equipment: workout.EquipmentCable, IsCompound: true,
		DefaultAlternatives: []string{"mac-iso-pd"},
		DescriptionMarkdown: "Pulldown to the upper chest with a medium grip.\n\n- Lead with the elbows, not the hands\n- Control the stretch at the top",
	},
	{
		ID: "cab-row-seat-lat", Name: "Seated Cable Row (Lats)",
		MuscleGroup: workout.MuscleGroupLats, Equipment: workout.EquipmentCable, IsCompound: true,
		DefaultAlternatives: []string{"cab-row-1h-kneel"},
		DescriptionMarkdown: "Seated row pulled low towards the navel with a neutral grip, biasing the lats over the upper back.",
	},
	{
		ID: "cab-lat-prayer", Name: "Cable Lat Prayers",
		MuscleGroup: workout.MuscleGroupLats, Equipment: workout.EquipmentCable, IsCompound: false,
		DefaultAlternatives: []string{"cab-lat-pd"},
		DescriptionMarkdown: "Straight-arm pulldown from a high cable, hinged at the hips. Pure lat isolation with a big stretch.",
	},
	{
		ID: "lm-row-1h", Name: "Landmine Row (Single-Arm)",
		MuscleGroup: workout.MuscleGroupLats, Equipment: workout.EquipmentBarbell, IsCompound: true,
		DefaultAlternatives: []string{"cab-row-1h-kneel"},
		DescriptionMarkdown: "Row the end of a landmine-anchored barbell one arm at a time, bracing the free hand on the knee.",
	},
	{
		ID: "mac-iso-pd", Name: "Iso-Lat Pulldown Machine (Single-Arm)",
		MuscleGroup: workout.MuscleGroupLats, Equipment: workout.EquipmentMachine, IsCompound: true,
		DefaultAlternatives: []string{"cab-lat-pd"},
		DescriptionMarkdown: "Plate-loaded single-arm pulldown. The fixed path lets you drive each side hard without grip being the limit.",
	},

	// Upper back
	{
		ID: "mac-hi-row", Name: "High Row Machine (Single-Arm)",
		MuscleGroup: workout.MuscleGroupUpperBack, Equipment: workout.EquipmentMachine, IsCompound: true,
		DefaultAlternatives: []string{"cab-row-seat-ub"},
		DescriptionMarkdown: "Chest-supported high row pulling from above shoulder height down and back, hitting the upper traps and rhomboids.",
	},
	{
		ID: "mac-lo-row", Name: "Low Row Machine (Single-Arm)",
		MuscleGroup: workout.MuscleGroupUpperBack, Equipment: workout.EquipmentMachine, IsCompound: true,
		DefaultAlternatives: []string{"cab-row-seat-ub"},
		DescriptionMarkdown: "Chest-supported low row pulled towards the waist. Squeeze the shoulder blade back at the end of each rep.",
	},
	{
		ID: "cab-row-seat-ub", Name: "Seated Cable Row (Upper Back)",
		MuscleGroup: workout.MuscleGroupUpperBack, Equipment: workout.EquipmentCable, IsCompound: true,
		DefaultAlternatives: []string{"tbar-row"},
		DescriptionMarkdown: "Seated row pulled high towards the sternum with elbows flared, targeting the mid-back rather than the lats.",
	},
	{
		ID: "tbar-row", Name: "T-Bar Row (Upper Back)",
		MuscleGroup: workout.MuscleGroupUpperBack, Equipment: workout.EquipmentMachine, IsCompound: true,
		DefaultAlternatives: []string{"cab-row-seat-ub"},
		DescriptionMarkdown: "Chest-supported T-bar row with a wide grip. Heavy mid-back work without loading the lower back.",
	},

	// Lower back
	{
		ID: "back-ext", Name: "Back Extension",
		MuscleGroup: workout.MuscleGroupLowerBack, Equipment: workout.EquipmentMachine, IsCompound: false,
		DefaultAlternatives: []string{},
		DescriptionMarkdown: "45° back extension. Hinge at the hips, keep the spine neutral, and squeeze the glutes at the top. Hold a plate for load.",
	},

	// Biceps
	{
		ID: "db-curl-stand", Name: "Standing Dumbbell Bicep Curls",
		MuscleGroup: workout.MuscleGroupBiceps, Equipment: workout.EquipmentDumbbell, IsCompound: false,
		DefaultAlternatives: []string{"bb-curl-stand"},
		DescriptionMarkdown: "Alternating or simultaneous dumbbell curls. Supinate the wrist as you curl and keep the elbows at the sides.",
	},
	{
		ID: "cab-curl-behind", Name: "Behind-the-Back Cable Curl",
		MuscleGroup: workout.MuscleGroupBiceps, Equipment: workout.EquipmentCable, IsCompound: false,
		DefaultAlternatives: []string{"db-curl-inc"},
		DescriptionMarkdown: "Curl with the cable running behind the body so the biceps start from a stretched position.",
	},
	{
		ID: "bb-curl-stand", Name: "Standing Barbell Curl",
		MuscleGroup: workout.MuscleGroupBiceps, Equipment: workout.EquipmentBarbell, IsCompound: false,
		DefaultAlternatives: []string{"db-curl-stand"},
		DescriptionMarkdown: "The heaviest curl variation. Keep the torso still; if you have to swing, the bar is too heavy.",
	},
	{
		ID: "db-preach-1h", Name: "Single-Arm DB Preacher Curl",
		MuscleGroup: workout.MuscleGroupBiceps, Equipment: workout.EquipmentDumbbell, IsCompound: false,
		DefaultAlternatives: []string{"bb-preach"},
		DescriptionMarkdown: "Preacher curl one arm at a time. The pad removes all momentum; expect a hard stretch at the bottom.",
	},
	{
		ID: "bb-preach", Name: "Barbell Preacher Curl",
		MuscleGroup: workout.MuscleGroupBiceps, Equipment: workout.EquipmentBarbell, IsCompound: false,
		DefaultAlternatives: []string{"db-preach-1h"},
		DescriptionMarkdown: "EZ-bar preacher curl. Lower almost to straight arms and curl without lifting the elbows off the pad.",
	},
	{
		ID: "db-curl-inc", Name: "Incline Dumbbell Curl",
		MuscleGroup: workout.MuscleGroupBiceps, Equipment: workout.EquipmentDumbbell, IsCompound: false,
		DefaultAlternatives: []string{"cab-curl-behind"},
		DescriptionMarkdown: "Curl while lying back on an incline bench, arms hanging behind the torso for a long-head stretch.",
	},

	// Legs
	{
		ID: "leg-ext", Name: "Leg Extension",
		MuscleGroup: workout.MuscleGroupLegs, Equipment: workout.EquipmentMachine, IsCompound: false,
		DefaultAlternatives: []string{"sq-hack"},
		DescriptionMarkdown: "Quad isolation. Pause briefly at full extension and lower under control.",
	},
	{
		ID: "leg-press", Name: "Leg Press",
		MuscleGroup: workout.MuscleGroupLegs, Equipment: workout.EquipmentMachine, IsCompound: true,
		DefaultAlternatives: []string{"sq-hack", "sq-pend"},
		DescriptionMarkdown: "Press from a 45° sled.\n\n- Feet mid-platform, hip width\n- Lower until the thighs reach the chest without the lower back rounding off the pad",
	},
	{
		ID: "leg-curl-seat", Name: "Seated Leg Curl",
		MuscleGroup: workout.MuscleGroupLegs, Equipment: workout.EquipmentMachine, IsCompound: false,
		DefaultAlternatives: []string{"leg-curl-lie"},
		DescriptionMarkdown: "Hamstring curl from a seated position, which keeps the hamstrings long and tends to allow more load than the lying version.",
	},
	{
		ID: "leg-curl-lie", Name: "Lying Leg Curl",
		MuscleGroup: workout.MuscleGroupLegs, Equipment: workout.EquipmentMachine, IsCompound: false,
		DefaultAlternatives: []string{"leg-curl-seat"},
		DescriptionMarkdown: "Face-down hamstring curl. Keep the hips pressed into the pad the whole set.",
	},
	{
		ID: "sq-hack", Name: "Hack Squat Machine",
		MuscleGroup: workout.MuscleGroupLegs, Equipment: workout.EquipmentMachine, IsCompound: true,
		DefaultAlternatives: []string{"sq-pend", "leg-press"},
		DescriptionMarkdown: "Machine squat with the back supported. Sink as deep as mobility allows; the machine keeps the torso honest.",
	},
	{
		ID: "sq-pend", Name: "Pendulum Squat Machine",
		MuscleGroup: workout.MuscleGroupLegs, Equipment: workout.EquipmentMachine, IsCompound: true,
		DefaultAlternatives: []string{"sq-hack"},
		DescriptionMarkdown: "Pendulum squat with an arcing path that keeps tension on the quads through a deep range of motion.",
	},

	// Glutes
	{
		ID: "hip-thrust-mac", Name: "Hip Thrust Machine",
		MuscleGroup: workout.MuscleGroupGlutes, Equipment: workout.EquipmentMachine, IsCompound: true,
		DefaultAlternatives: []string{},
		DescriptionMarkdown: "Machine hip thrust. Drive through the heels and finish each rep with a full glute squeeze at lockout.",
	},
	{
		ID: "hip-abd-mac", Name: "Hip Abductor Machine",
		MuscleGroup: workout.MuscleGroupGlutes, Equipment: workout.EquipmentMachine, IsCompound: false,
		DefaultAlternatives: []string{},
		DescriptionMarkdown: "Seated abduction for the glute medius. Lean slightly forward to bias the upper glutes.",
	},

	// Calves
	{
		ID: "calf-raise-stand", Name: "Standing Calf Raise Machine",
		MuscleGroup: workout.MuscleGroupCalves, Equipment: workout.EquipmentMachine, IsCompound: false,
		DefaultAlternatives: []string{"calf-raise-seat"},
		DescriptionMarkdown: "Standing raise with straight knees, training the gastrocnemius. Pause at the deep stretch on every rep.",
	},
	{
		ID: "calf-raise-seat", Name: "Seated Calf Raise Machine",
		MuscleGroup: workout.MuscleGroupCalves, Equipment: workout.EquipmentMachine, IsCompound: false,
		DefaultAlternatives: []string{"calf-raise-stand"},
		DescriptionMarkdown: "Seated raise with bent knees, shifting the work to the soleus under the gastrocnemius.",
	},
}
