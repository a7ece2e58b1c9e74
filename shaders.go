package skiff

// Built-in Kage shader sources for the pipeline passes. The shader cache
// resolves these paths to files under the asset directory when they exist,
// so the sources below double as hot-reloadable defaults.
// All shaders use //kage:unit pixels as required by Ebitengine. Ebitengine
// uses premultiplied alpha; shaders un-premultiply before processing and
// re-premultiply output.

const (
	backgroundShaderPath = "shaders/background.kage"
	spriteShaderPath     = "shaders/sprite.kage"
)

const backgroundShaderSrc = `//kage:unit pixels
package main

var Offset vec2

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	size := imageSrc0Size()
	origin := imageSrc0Origin()
	// Scroll the UVs by Offset (in texture-size units), wrapping.
	p := mod(src-origin+Offset*size, size) + origin
	return imageSrc0At(p)
}
`

const spriteShaderSrc = `//kage:unit pixels
package main

var Time float
var UseBlink float
var BlinkColor vec4
var BlinkAmplitude float
var Tint vec4

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	c := imageSrc0At(src)
	// Un-premultiply alpha.
	if c.a > 0 {
		c.rgb /= c.a
	}
	// Static tint multiplies.
	c.rgb *= Tint.rgb
	c.a *= Tint.a
	// Periodic blink mixes toward the blink color.
	if UseBlink > 0 {
		f := abs(sin(BlinkAmplitude * Time))
		c.rgb = mix(c.rgb, BlinkColor.rgb, f*BlinkColor.a)
	}
	// Re-premultiply.
	return vec4(c.rgb*c.a, c.a)
}
`

// builtinShaders is the shader loader's fallback source registry.
var builtinShaders = map[string][]byte{
	backgroundShaderPath: []byte(backgroundShaderSrc),
	spriteShaderPath:     []byte(spriteShaderSrc),
}
