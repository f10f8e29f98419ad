// Package mintmod rewrites mintmod-flavoured LaTeX into generic pandoc
// elements. It is the Go counterpart of a pandoc filter: raw LaTeX blocks
// and inlines that pandoc could not interpret are matched against the known
// mintmod command and environment grammar and replaced by Divs, Spans,
// Headers, Links and Math nodes carrying classes and attributes.
package mintmod

import "regexp"

// Element class for index labels.
const indexLabelPrefix = "index-label"

// Attribute name for index terms.
const indexAttribute = "data-index-term"

// Element class for site UXIDs.
const siteUXIDPrefix = "site-uxid"

// Default points for exercises.
const defaultExercisePoints = "4"

// Max. recursion depth for fragment parsing.
const maxRecursionDepth = 10

// exerciseNames are unknown commands/envs that belong to the exercise
// subsystem; --ignore-exercises suppresses their logs, --remove-exercises
// drops them entirely.
var exerciseNames = map[string]bool{
	"MLParsedQuestion":         true,
	"MLSimplifyQuestion":       true,
	"MLFunctionQuestion":       true,
	"MDirectRouletteExercises": true,
	"MSetPoints":               true,
	"MLCheckbox":               true,
	"MLIntervalQuestion":       true,
	"MGroupButton":             true,
	"MLQuestion":               true,
	"MExerciseCollection":      true,
	"MLSpecialQuestion":        true,
}

type substitution struct {
	re   *regexp.Regexp
	repl string
}

func mustSubs(pairs [][2]string) []substitution {
	subs := make([]substitution, len(pairs))
	for i, p := range pairs {
		subs[i] = substitution{re: regexp.MustCompile(p[0]), repl: p[1]}
	}
	return subs
}

// mathSubstitutions are ordered regex replacements applied to math content.
var mathSubstitutions = mustSubs([][2]string{
	// leave \Rightarrow, ... intact
	{`\\([NZQRC])($|[_\\$:=\s^,.})])`, `\mathbb{$1}$2`},
	{`\\Mtfrac`, `\tfrac`},
	{`\\Mdfrac`, `\dfrac`},
	{`\\MBlank`, `\ `},
	{`\\MCondSetSep`, ` {\,}:{\,}`},
	{`\\MDFPSpace`, `\,`},
	{`\\MDFPaSpace`, `\,\,`},
	{`\\MDFPeriod`, `\, .`},
	{`\\MTSP`, ``},
	{`\\MSetminus`, `\setminus`},
	{`\\MElSetSep`, `;`},
	{`\\MIntvlSep`, `;`},
	{`\\MEU`, `e`},
	{`\\MDwSp`, `\,d`},
	{`\\ML`, `L`},
	{`\\MEmptyset`, `\emptyset`},
	{`\\MUnderset`, `\underset`},
	{`\\MBinom`, `\binom`},
	{`\\MTextSF`, `\textsf`},
	{`\\MHDots`, `\dots`},
	{`\\Mvarphi`, `\varphi`},
	{`\\Mmeasuredangle`, `\measuredangle`},
	{`\\lto`, `\longrightarrow`},
	{`\\null`, ``},
	{`\\MOhm`, `\Omega`},
	{`\\Mvarepsilon`, `\varepsilon`},
	{`\\ld\(`, `\mathrm{ld}(`},
	{`\\MGGT`, `\mathrm{ggT}`},
	{`\\MSep`, `\left\|{\phantom{\frac1g}}\right.`},
	{`\\MGrad`, `^{\circ}`},
	{`\\MGeoAbstand\{([A-Za-z0-9])\}\{([A-Za-z0-9])\}`, `[\overline{$1$2}]`},
	{`\\MGeoStrecke\{([A-Za-z0-9])\}\{([A-Za-z0-9])\}`, `\overline{$1$2}`},
	{`\\MGeoGerade\{([A-Za-z0-9])\}\{([A-Za-z0-9])\}`, `$1$2`},
	{`\\MGeoDreieck\{([A-Za-z0-9])\}\{([A-Za-z0-9])\}\{([A-Za-z0-9])\}`, `$1$2$3`},
	{`\\Id\((.*?)\)`, `\operatorname{Id}($1)`},
	{`\\Id`, `\mathrm{Id}`},
	{`\\Mid`, `\mathrm{id}`},
	{`\\MRelates`, `\stackrel{\scriptscriptstyle\wedge}{=}`},
	{`\\Mmapsto`, `\mapsto`},
	// handled by the MathJax extension on the client
	{`\\MZahl\{([0-9]+?)\}\{([0-9]*?)\}`, `\num{$1.$2}`},
	{`\\MZXYZhltrennzeichen`, `\decmarker`},
	// intervals
	{`\\MoIl\[\\left\]`, `\left]`},
	{`\\MoIr\[\\right\]`, `\right[`},
	{`\\MoIl`, `]`},
	{`\\MoIr`, `[`},
	// vectors
	{`\\MDVec`, `\overrightarrow`},
	{`\\MVec\{`, `\vec{`}, // trailing '{' so it doesn't touch \MVector
	// italic integral
	{`\\MD`, `d`},
	{`\\jMD`, `\,d`},
	// MCaseEnv
	{`\\begin\{MCaseEnv\}`, `\left\lbrace\begin{array}{rl}`},
	{`\\end\{MCaseEnv\}`, `\end{array}\right.`},
	// preprocess '\MPointTwo[\Big]{}{}' -> '\MPointTwo{\Big}{}{}'
	{`\\MPoint(Two|Three)\[([^\]]+)\]`, `\MPoint$1{$2}`},
	// preprocess '\MEinheit[]' -> '\MEinheit{}'
	{`\\MEinheit\[\]`, `\MEinheit{}`},
})

// tikzSubstitutions are applied to TikZ figure code.
var tikzSubstitutions = mustSubs([][2]string{
	{`\\MEinheit\{([^}]+?)\}`, `\unit{$1}`},
	{`\\MZahl\{([0-9]+?)\}\{([0-9]*?)\}`, `\num{$1.$2}`},
	{`\\Mvarphi`, `\varphi`},
	{`\\Mvarepsilon`, `\varepsilon`},
	{`\\Mmeasuredangle`, `\measuredangle`},
	{`\\MDVec`, `\overrightarrow`},
	{`\\MVec\{`, `\vec{`}, // trailing '{' so it doesn't touch \MVector
	{`\\MZXYZhltrennzeichen`, `\decmarker`},
	{`\\MVector\{`, `\colvector{`},
	{`\\MGrad`, `\degree`},
	{`\\MPointTwo`, `\pointtwo`},
	{`\\MPointThree`, `\pointthree`},
	{`\\jccolorfktareahell`, `\funccolorareabright`},
	{`\\jccolorfkt`, `\funccolor`},
})

// irregularCommand is a math command whose arguments may contain nested
// commands, so it cannot be handled by plain regex substitution. Templates
// are fmt format strings keyed by argument count.
type irregularCommand struct {
	name      string
	templates map[int]string
}

// Order matters: MPointTwoAS must precede MPointTwo in the alternation.
var irregularCommands = []irregularCommand{
	{"MVector", map[int]string{1: `\begin{pmatrix}%s\end{pmatrix}`}},
	{"MPointTwoAS", map[int]string{2: `\left(%s\coordsep %s\right)`}},
	{"MPointTwo", map[int]string{
		2: `(%s\coordsep %s)`,
		3: `%[1]s(%[2]s\coordsep %[3]s{}%[1]s)`,
	}},
	{"MPointThree", map[int]string{
		3: `(%s\coordsep %s\coordsep %s)`,
		4: `%[1]s(%[2]s\coordsep %[3]s\coordsep %[4]s{}%[1]s)`,
	}},
	{"MCases", map[int]string{
		1: `\left\lbrace{\begin{array}{rl} %s \end{array}}\right.`,
	}},
	{"function", map[int]string{
		5: `%s:\;\left\lbrace{\begin{array}{rcl} %s &\longrightarrow & %s \\ %s &\longmapsto  & %s \end{array}}\right.`,
	}},
	{"MEinheit", map[int]string{
		1: `\, \mathrm{%s}`,
		2: `\mathrm{%[2]s}`,
	}},
}

var irregularRe = func() *regexp.Regexp {
	alt := ""
	for i, cmd := range irregularCommands {
		if i > 0 {
			alt += "|"
		}
		alt += cmd.name
	}
	return regexp.MustCompile(`\\(` + alt + `)`)
}()

var irregularByName = func() map[string]irregularCommand {
	m := make(map[string]irregularCommand, len(irregularCommands))
	for _, cmd := range irregularCommands {
		m[cmd.name] = cmd
	}
	return m
}()

// elementClasses maps mintmod constructs to innodoc element classes.
var elementClasses = map[string][]string{
	"QUESTION":                 {"question"},
	"HIGHLIGHT":                {"highlight"},
	"IMAGE":                    {"img"},
	"FIGURE":                   {"figure"},
	"DEBUG_UNKNOWN_CMD":        {"innoconv-debug-unknown-command"},
	"DEBUG_UNKNOWN_ENV":        {"innoconv-debug-unknown-environment"},
	"MCOSHZUSATZ":              {"secondary"},
	"MEXAMPLE":                 {"example"},
	"MEXERCISE":                {"exercise"},
	"MEXERCISES":               {"exercises"},
	"MDIRECTROULETTEEXERCISES": {"exercise-roulette"},
	"MEXPERIMENT":              {"experiment"},
	"MHINT":                    {"hint"},
	"MINFO":                    {"info"},
	"MINPUTHINT":               {"hint-text"},
	"MINTRO":                   {"intro"},
	"MQUESTIONGROUP":           {"question-group"},
	"MTEST":                    {"test"},
	"MTIKZAUTO":                {"tikz"},
	"MVIDEO":                   {"video", "video-static"},
	"MYOUTUBE_VIDEO":           {"video", "video-youtube"},
}

// Highlight colors for unknown commands/environments in debug mode.
const (
	colorUnknownCmd = "#ffa500"
	colorUnknownEnv = "#ff4d00"
)

// mintmodSubjects maps \MSetSubject arguments to category names.
var mintmodSubjects = map[string]string{
	`\MINTMathematics`: "mathematics",
	`\MINTInformatics`: "informatics",
	`\MINTChemistry`:   "chemistry",
	`\MINTPhysics`:     "physics",
	`\MINTEngineering`: "engineering",
}

// translations are strings emitted into generated content.
var translations = map[string]map[string]string{
	"content":      {"de": "Inhalt", "en": "Content"},
	"introduction": {"de": "Einführung", "en": "Introduction"},
	"exercises":    {"de": "Aufgaben", "en": "Exercises"},
}

var (
	cmdRe           = regexp.MustCompile(`(?s)\A\\([^\\\s{]+)(.*)\z`)
	envBeginRe      = regexp.MustCompile(`(?s)\A\\begin\{([^}]+)\}(.*)\z`)
	stripHashLineRe = regexp.MustCompile(`^%(\r\n|\r|\n)`)
	// strips cross references (\MRef, \MSRef, \MNRef) from test titles,
	// e.g. "Abschlusstest \MRef{...}"
	fixMTestRe = regexp.MustCompile(`\s*\\M[NS]?Ref\{[^}]*\}`)
)
