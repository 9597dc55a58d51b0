package build

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const resourceSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="48" height="48"><g id="Icon-Resource/Storage/Res_Bucket_48" fill="none"><path fill="url(#linearGradient-1)" d="M0 0"/></g></svg>`

const categorySVG = `<svg xmlns="http://www.w3.org/2000/svg"><g id="Icon-Architecture-Category/64/Storage_64"><path d="M0 0"/></g></svg>`

func TestPrepareSVG(t *testing.T) {
	tests := []struct {
		name string
		in   string
		opts SVGOptions
		want string
	}{
		{
			name: "gradient and white backdrop",
			in:   resourceSVG,
			opts: SVGOptions{Color: "#7AA116", Gradient: true},
			want: `<svg xmlns="http://www.w3.org/2000/svg" width="48" height="48"><g id="Icon-Resource/Storage/Res_Bucket_48" fill="none"><rect width="100%" height="100%" fill="white"/><path fill="#7AA116" d="M0 0"/></g></svg>`,
		},
		{
			name: "transparent keeps gradient when disabled",
			in:   resourceSVG,
			opts: SVGOptions{Color: "#7AA116", Transparent: true},
			want: resourceSVG,
		},
		{
			name: "category backdrop in icon color",
			in:   categorySVG,
			opts: SVGOptions{Color: "#7AA116"},
			want: `<svg xmlns="http://www.w3.org/2000/svg"><g id="Icon-Architecture-Category/64/Storage_64"><rect width="100%" height="100%" fill="#7AA116"/><path d="M0 0"/></g></svg>`,
		},
		{
			name: "macro colors are not written into svg",
			in:   categorySVG,
			opts: SVGOptions{Color: "$AWS_FG_COLOR", Gradient: true},
			want: categorySVG,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, string(PrepareSVG([]byte(tt.in), tt.opts)))
		})
	}
}

func TestPrepareSVG_SelfClosingGroupUntouched(t *testing.T) {
	in := `<svg><g id="Icon-Resource/x"/></svg>`
	assert.Equal(t, in, string(PrepareSVG([]byte(in), SVGOptions{Color: "#000000"})))
}
