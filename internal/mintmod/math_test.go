package mintmod

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/innodoc/innoconv-mintmod/internal/ast"
)

func TestHandleMathSubstitutions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "number sets",
			in:   `\N \Q {\R}`,
			want: `\mathbb{N} \mathbb{Q} {\mathbb{R}}`,
		},
		{
			name: "fractions and spacing",
			in:   `\Mtfrac{1}{2}\MBlank\MDFPeriod`,
			want: `\tfrac{1}{2}\ \, .`,
		},
		{
			name: "mzahl",
			in:   `\MZahl{1}{5}`,
			want: `\num{1.5}`,
		},
		{
			name: "case environment",
			in: `|x| = \begin{MCaseEnv} x & \text{falls}\;x\geq 0 ` +
				`\\ -x & \text{falls}\;x<0 \MDFPeriod \end{MCaseEnv}`,
			want: `|x| = \left\lbrace\begin{array}{rl} x & \text{falls}\;x\geq 0 ` +
				`\\ -x & \text{falls}\;x<0 \, . \end{array}\right.`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			math := &ast.Math{Type: ast.InlineMath, Text: tt.in}
			_, err := handleMath(math)
			require.NoError(t, err)
			require.Equal(t, tt.want, math.Text)
		})
	}
}

func TestHandleMathIrregular(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "mvector with commands in arguments",
			in:   `x^2 \MVector{2\\-\Mtfrac{5}{2}\\-2}`,
			want: `x^2 \begin{pmatrix}2\\-\tfrac{5}{2}\\-2\end{pmatrix}`,
		},
		{
			name: "mpointtwo",
			in:   `\MPointTwo{\frac{3}{2}}{1+\frac{\sqrt{3}}{2}} x_2`,
			want: `(\frac{3}{2}\coordsep 1+\frac{\sqrt{3}}{2}) x_2`,
		},
		{
			name: "mpointtwo with size argument",
			in:   `\MPointTwo[\Big]{\frac{3}{2}}{1+\frac{\sqrt{3}}{2}}`,
			want: `\Big(\frac{3}{2}\coordsep 1+\frac{\sqrt{3}}{2}{}\Big)`,
		},
		{
			name: "mpointtwo followed by command",
			in:   `\MPointTwo[\Big]{\frac{1}{n}}{0}\MCondSetSep`,
			want: `\Big(\frac{1}{n}\coordsep 0{}\Big) {\,}:{\,}`,
		},
		{
			name: "mpointtwoas",
			in:   `\MPointTwoAS{-\sqrt6}{-\frac12\sqrt6}`,
			want: `\left(-\sqrt6\coordsep -\frac12\sqrt6\right)`,
		},
		{
			name: "mpointthree",
			in:   `\MPointThree{x = \Mtfrac{2}{19}}{y = - \Mtfrac{5}{19}}{z = \Mtfrac{2}{19}}`,
			want: `(x = \tfrac{2}{19}\coordsep y = - \tfrac{5}{19}\coordsep z = \tfrac{2}{19})`,
		},
		{
			name: "mpointthree with size argument",
			in:   `\MPointThree[\Big]{\frac{3}{2}}{1}{2}`,
			want: `\Big(\frac{3}{2}\coordsep 1\coordsep 2{}\Big)`,
		},
		{
			name: "multiple commands in one math string",
			in: `z=\MPointThree{\frac{1}{2}}{3}{\sqrt{2}};` +
				`q=\MPointTwoAS{2}{1+\frac{\sqrt{3}}{2}};` +
				`f(x)=x^2`,
			want: `z=(\frac{1}{2}\coordsep 3\coordsep \sqrt{2});` +
				`q=\left(2\coordsep 1+\frac{\sqrt{3}}{2}\right);` +
				`f(x)=x^2`,
		},
		{
			name: "mcases",
			in: `\MCases{\text{Term} & \text{falls}\;\text{Term}\geq 0\\ ` +
				`-\text{Term} & \text{falls}\;\text{Term}<0}`,
			want: `\left\lbrace{\begin{array}{rl} \text{Term} & \text{falls}\;` +
				`\text{Term}\geq 0\\ -\text{Term} & \text{falls}\;\text{Term}<0 ` +
				`\end{array}}\right.`,
		},
		{
			name: "function",
			in: `\function{h}{(-\frac{\pi}{2}\MIntvlSep \frac{\pi}{2})}` +
				`{\R}{\alpha}{\tan(\alpha)}`,
			want: `h:\;\left\lbrace{\begin{array}{rcl} ` +
				`(-\frac{\pi}{2}; \frac{\pi}{2}) &\longrightarrow &` +
				` \mathbb{R} \\ \alpha &\longmapsto  & \tan(\alpha) ` +
				`\end{array}}\right.`,
		},
		{
			name: "meinheit",
			in:   `\MEinheit{kg} -58^{\circ}{\MEinheit[]{C}}`,
			want: `\, \mathrm{kg} -58^{\circ}{\mathrm{C}}`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			math := &ast.Math{Type: ast.InlineMath, Text: tt.in}
			_, err := handleMath(math)
			require.NoError(t, err)
			require.Equal(t, tt.want, math.Text)
		})
	}
}

func TestHandleMathIrregularUnknownArity(t *testing.T) {
	t.Parallel()

	math := &ast.Math{Type: ast.InlineMath, Text: `\MVector{1}{2}`}
	_, err := handleMath(math)
	require.ErrorIs(t, err, ErrParse)
}
