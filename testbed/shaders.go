package testbed

// Built in copies of assets/shaders/cube.{vert,frag}, used when the asset
// directory is not found.
const (
	cubeVertexSource = `#version 410 core
layout(location = 0) in vec3 a_position;
layout(location = 1) in vec3 a_normal;
layout(location = 2) in vec2 a_uv;

uniform mat4 u_model;
uniform mat4 u_view_projection;

out vec3 v_normal;
out vec2 v_uv;

void main() {
	v_normal = mat3(u_model) * a_normal;
	v_uv = a_uv;
	gl_Position = u_view_projection * u_model * vec4(a_position, 1.0);
}
`

	cubeFragmentSource = `#version 410 core
in vec3 v_normal;
in vec2 v_uv;

uniform sampler2D u_texture;
uniform vec3 u_light_dir;

out vec4 o_colour;

void main() {
	float diffuse = max(dot(normalize(v_normal), -normalize(u_light_dir)), 0.0);
	vec3 albedo = texture(u_texture, v_uv).rgb;
	o_colour = vec4(albedo * (0.2 + 0.8 * diffuse), 1.0);
}
`
)
