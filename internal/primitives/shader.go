package primitives

import rl "github.com/gen2brain/raylib-go/raylib"

// litVS/litFS: directional light + ambient, optionally sampling the albedo texture.
const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 mvp;
uniform mat4 matModel;
uniform mat4 matNormal;
out vec3 fragPosition;
out vec2 fragTexCoord;
out vec3 fragNormal;
void main() {
  fragPosition = vec3(matModel * vec4(vertexPosition, 1.0));
  fragTexCoord = vertexTexCoord;
  fragNormal = normalize(vec3(matNormal * vec4(vertexNormal, 0.0)));
  gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`
	litFS = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
uniform sampler2D texture0;
uniform vec4 colDiffuse;
uniform float useTexture;
uniform vec3 viewPos;
uniform vec3 lightDir;
uniform vec3 ambient;
uniform float lightIntensity;
out vec4 finalColor;
void main() {
  vec4 base = colDiffuse;
  if (useTexture > 0.5) {
    base *= texture(texture0, fragTexCoord);
  }
  vec3 N = normalize(fragNormal);
  vec3 L = normalize(lightDir);
  vec3 V = normalize(viewPos - fragPosition);
  float diff = max(dot(N, L), 0.0) * lightIntensity;
  float rim = pow(1.0 - max(dot(N, V), 0.0), 3.0) * 0.15;
  finalColor = vec4(base.rgb * (ambient + diff) + rim, base.a);
}
`
)

// Light setup. The ambient term is strong so unlit sides keep their color.
var (
	ambientColor   = [3]float32{0.55, 0.55, 0.6}
	lightIntensity = float32(0.6)
)

// litShader holds the compiled shader and its uniform locations.
type litShader struct {
	shader     rl.Shader
	useTexLoc  int32
	viewPosLoc int32
	lightLoc   int32
	ambientLoc int32
	intensLoc  int32
}

func loadLitShader() (*litShader, bool) {
	sh := rl.LoadShaderFromMemory(litVS, litFS)
	if !rl.IsShaderValid(sh) {
		return nil, false
	}
	return &litShader{
		shader:     sh,
		useTexLoc:  rl.GetShaderLocation(sh, "useTexture"),
		viewPosLoc: rl.GetShaderLocation(sh, "viewPos"),
		lightLoc:   rl.GetShaderLocation(sh, "lightDir"),
		ambientLoc: rl.GetShaderLocation(sh, "ambient"),
		intensLoc:  rl.GetShaderLocation(sh, "lightIntensity"),
	}, true
}

// setFrame uploads per-frame uniforms (cgo-safe: local arrays).
func (l *litShader) setFrame(viewPos, lightDir [3]float32) {
	vp := viewPos
	ld := lightDir
	amb := ambientColor
	if l.viewPosLoc >= 0 {
		rl.SetShaderValueV(l.shader, l.viewPosLoc, vp[:], rl.ShaderUniformVec3, 1)
	}
	if l.lightLoc >= 0 {
		rl.SetShaderValueV(l.shader, l.lightLoc, ld[:], rl.ShaderUniformVec3, 1)
	}
	if l.ambientLoc >= 0 {
		rl.SetShaderValueV(l.shader, l.ambientLoc, amb[:], rl.ShaderUniformVec3, 1)
	}
	if l.intensLoc >= 0 {
		rl.SetShaderValue(l.shader, l.intensLoc, []float32{lightIntensity}, rl.ShaderUniformFloat)
	}
}

// setTextured toggles texture sampling for the next draw.
func (l *litShader) setTextured(on bool) {
	if l.useTexLoc < 0 {
		return
	}
	v := float32(0)
	if on {
		v = 1
	}
	rl.SetShaderValue(l.shader, l.useTexLoc, []float32{v}, rl.ShaderUniformFloat)
}
