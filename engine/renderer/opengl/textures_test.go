package opengl

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prism3d/prism-go/engine/renderer"
	"github.com/prism3d/prism-go/engine/texture"
)

func rgbaImage(w, h int) *texture.Image {
	return texture.NewImage(texture.FormatRGBA8, w, h, make([]byte, w*h*4))
}

func TestSetTextureFirstUpload(t *testing.T) {
	r, g := newTestRenderer(t)
	img := rgbaImage(2, 2)
	tex := texture.NewTexture2D(img)

	require.NoError(t, r.SetTexture(0, tex))

	id := img.ID()
	want := []string{
		fmt.Sprintf("GenTexture()=%d", id),
		fmt.Sprintf("BindTexture(%d,%d)", TEXTURE_2D, id),
		fmt.Sprintf("TexImage2D(%d,0,%d,2,2,%d,%d,16)", TEXTURE_2D, RGBA8, RGBA, UNSIGNED_BYTE),
		fmt.Sprintf("TexParameteri(%d,%d,%d)", TEXTURE_2D, TEXTURE_MAG_FILTER, LINEAR),
		fmt.Sprintf("TexParameteri(%d,%d,%d)", TEXTURE_2D, TEXTURE_MIN_FILTER, LINEAR),
		fmt.Sprintf("TexParameterf(%d,%d,1)", TEXTURE_2D, TEXTURE_MAX_ANISOTROPY),
		fmt.Sprintf("TexParameteri(%d,%d,%d)", TEXTURE_2D, TEXTURE_WRAP_T, REPEAT),
		fmt.Sprintf("TexParameteri(%d,%d,%d)", TEXTURE_2D, TEXTURE_WRAP_S, REPEAT),
	}
	assert.Equal(t, want, g.calls)
	assert.False(t, img.UpdateNeeded())

	snap := r.Statistics().Snapshot()
	assert.Equal(t, 1, snap.Textures)
	assert.Equal(t, 1, snap.TextureBinds)

	// A clean image with cached parameters costs no GL calls.
	g.reset()
	require.NoError(t, r.SetTexture(0, tex))
	assert.Empty(t, g.calls)
}

func TestSetTextureUnitSwitching(t *testing.T) {
	r, g := newTestRenderer(t)
	img := rgbaImage(2, 2)
	tex := texture.NewTexture2D(img)
	require.NoError(t, r.SetTexture(0, tex))
	id := img.ID()

	// A fresh unit needs both the unit switch and the bind.
	g.reset()
	require.NoError(t, r.SetTexture(1, tex))
	assert.Equal(t, []string{
		fmt.Sprintf("ActiveTexture(%d)", TEXTURE0+1),
		fmt.Sprintf("BindTexture(%d,%d)", TEXTURE_2D, id),
	}, g.calls)

	// Unit 0 still holds the texture, so only the unit switch remains.
	g.reset()
	require.NoError(t, r.SetTexture(0, tex))
	assert.Equal(t, []string{fmt.Sprintf("ActiveTexture(%d)", TEXTURE0)}, g.calls)
}

func TestSetTextureRebindsAfterIDReuse(t *testing.T) {
	r, g := newTestRenderer(t)
	img := rgbaImage(2, 2)
	tex := texture.NewTexture2D(img)
	require.NoError(t, r.SetTexture(0, tex))
	firstUpload := append([]string(nil), g.calls...)
	id := img.ID()

	r.DeleteImage(img)

	// Make the driver hand out the same texture name again. The unit's
	// shadow state still refers to the deleted texture, and only the
	// generation in the reference tells the two apart.
	g.reset()
	g.nextID = id - 1
	require.NoError(t, r.SetTexture(0, tex))
	require.Equal(t, id, img.ID())
	assert.Equal(t, firstUpload, g.calls)
	assert.Equal(t, 1, g.count("BindTexture("))
}

func TestSetTextureSizeLimits(t *testing.T) {
	t.Run("2D over the texture size limit", func(t *testing.T) {
		g := newFakeGL()
		g.integers[MAX_TEXTURE_SIZE] = 4096
		r := newTestRendererOn(t, g, g)

		img := texture.NewImage(texture.FormatRGBA8, 8192, 8192)
		err := r.SetTexture(0, texture.NewTexture2D(img))
		require.ErrorIs(t, err, renderer.ErrUnsupportedHardware)
		assert.ErrorContains(t, err, "maximum texture size 4096")
		assert.Equal(t, 0, g.count("TexImage2D("), "rejected images must not reach the driver")
	})

	t.Run("cubemap over the cubemap size limit", func(t *testing.T) {
		g := newFakeGL()
		g.integers[MAX_CUBE_MAP_TEXTURE_SIZE] = 4096
		r := newTestRendererOn(t, g, g)

		img := texture.NewImage(texture.FormatRGBA8, 8192, 8192, nil, nil, nil, nil, nil, nil)
		err := r.SetTexture(0, texture.NewTexture(texture.TexCubeMap, img))
		require.ErrorIs(t, err, renderer.ErrUnsupportedHardware)
		assert.ErrorContains(t, err, "maximum cubemap size 4096")
		assert.Equal(t, 0, g.count("TexImage2D("))
	})

	t.Run("non-square cubemap", func(t *testing.T) {
		r, _ := newTestRenderer(t)
		img := texture.NewImage(texture.FormatRGBA8, 4, 2, nil, nil, nil, nil, nil, nil)
		err := r.SetTexture(0, texture.NewTexture(texture.TexCubeMap, img))
		require.ErrorIs(t, err, renderer.ErrIllegalArgument)
		assert.ErrorContains(t, err, "must be square")
	})

	t.Run("wrong cubemap face count", func(t *testing.T) {
		r, _ := newTestRenderer(t)
		img := texture.NewImage(texture.FormatRGBA8, 4, 4, nil, nil)
		err := r.SetTexture(0, texture.NewTexture(texture.TexCubeMap, img))
		require.ErrorIs(t, err, renderer.ErrIllegalArgument)
		assert.ErrorContains(t, err, "carries 2 faces, needs 6")
	})
}

func TestSetTextureNonPowerOfTwoTiers(t *testing.T) {
	t.Run("full support passes everything", func(t *testing.T) {
		r, g := newTestRenderer(t)
		tex := texture.NewTexture2D(rgbaImage(30, 20))
		require.NoError(t, r.SetTexture(0, tex))
		assert.Equal(t, 1, g.count("TexImage2D("))
	})

	t.Run("no support rejects outright", func(t *testing.T) {
		g := newFakeGL()
		g.strs[VERSION] = "2.1"
		g.strs[SHADING_LANGUAGE_VERSION] = "1.20"
		g.exts = nil
		r := newTestRendererOn(t, gl2Only{g}, g)

		err := r.SetTexture(0, texture.NewTexture2D(rgbaImage(30, 20)))
		require.ErrorIs(t, err, renderer.ErrUnsupportedHardware)
		assert.ErrorContains(t, err, "non-power-of-two textures not supported, image is 30x20")
		assert.Equal(t, 0, g.count("GenTexture("), "the check precedes any driver object")
	})

	t.Run("partial support on ES 2.0", func(t *testing.T) {
		g := newFakeGL()
		g.strs[VERSION] = "OpenGL ES 2.0"
		g.strs[SHADING_LANGUAGE_VERSION] = "OpenGL ES GLSL ES 1.00"
		g.exts = nil
		r := newTestRendererOn(t, baselineOnly{g}, g)

		repeating := texture.NewTexture2D(rgbaImage(30, 20))
		err := r.SetTexture(0, repeating)
		require.ErrorIs(t, err, renderer.ErrUnsupportedHardware)
		assert.ErrorContains(t, err, "repeating non-power-of-two")

		clamped := texture.NewTexture2D(rgbaImage(30, 20))
		clamped.SetWrapAll(texture.WrapEdgeClamp)
		require.NoError(t, r.SetTexture(0, clamped))
		assert.Equal(t, 1, g.count("TexImage2D("))

		clamped.SetMinFilter(texture.MinTrilinear)
		err = r.SetTexture(0, clamped)
		require.ErrorIs(t, err, renderer.ErrUnsupportedHardware)
		assert.ErrorContains(t, err, "mipmapped non-power-of-two")
	})
}

func TestSetTextureSrgb(t *testing.T) {
	t.Run("tagged images upgrade under linearization", func(t *testing.T) {
		r, g := newTestRenderer(t, WithLinearizeSrgbImages())
		img := rgbaImage(2, 2)
		img.SetColorSpace(texture.SpaceSRGB)
		require.NoError(t, r.SetTexture(0, texture.NewTexture2D(img)))
		assert.Contains(t, g.last("TexImage2D("),
			fmt.Sprintf("TexImage2D(%d,0,%d,", TEXTURE_2D, SRGB8_ALPHA8))
	})

	t.Run("tagged images stay linear without the option", func(t *testing.T) {
		r, g := newTestRenderer(t)
		img := rgbaImage(2, 2)
		img.SetColorSpace(texture.SpaceSRGB)
		require.NoError(t, r.SetTexture(0, texture.NewTexture2D(img)))
		assert.Contains(t, g.last("TexImage2D("),
			fmt.Sprintf("TexImage2D(%d,0,%d,", TEXTURE_2D, RGBA8))
	})

	t.Run("explicit sRGB format needs hardware support", func(t *testing.T) {
		g := newFakeGL()
		g.strs[VERSION] = "2.1"
		g.strs[SHADING_LANGUAGE_VERSION] = "1.20"
		g.exts = nil
		r := newTestRendererOn(t, gl2Only{g}, g)

		img := texture.NewImage(texture.FormatSRGB8A8, 2, 2, make([]byte, 16))
		err := r.SetTexture(0, texture.NewTexture2D(img))
		require.ErrorIs(t, err, renderer.ErrUnsupportedHardware)
		assert.ErrorContains(t, err, "sRGB texture formats not supported")
	})
}

func TestSetTextureMultisample(t *testing.T) {
	t.Run("render target allocation", func(t *testing.T) {
		r, g := newTestRenderer(t)
		img := texture.NewImage(texture.FormatRGBA8, 64, 64)
		img.SetSamples(4)
		require.NoError(t, r.SetTexture(0, texture.NewTexture2D(img)))

		id := img.ID()
		assert.Equal(t, []string{
			fmt.Sprintf("GenTexture()=%d", id),
			fmt.Sprintf("BindTexture(%d,%d)", TEXTURE_2D_MULTISAMPLE, id),
			fmt.Sprintf("TexImage2DMultisample(%d,4,%d,64,64,true)", TEXTURE_2D_MULTISAMPLE, RGBA8),
		}, g.calls, "multisample targets carry no sampler parameters")
	})

	t.Run("sample count clamps to the hardware limit", func(t *testing.T) {
		r, g := newTestRenderer(t)
		img := texture.NewImage(texture.FormatRGBA8, 64, 64)
		img.SetSamples(16)
		require.NoError(t, r.SetTexture(0, texture.NewTexture2D(img)))
		assert.Equal(t, 8, img.Samples())
		assert.Contains(t, g.last("TexImage2DMultisample("),
			fmt.Sprintf("TexImage2DMultisample(%d,8,", TEXTURE_2D_MULTISAMPLE))
	})

	t.Run("array render target allocation", func(t *testing.T) {
		r, g := newTestRenderer(t)
		img := texture.NewImage(texture.FormatRGBA8, 64, 64)
		img.SetSamples(4)
		img.SetDepth(4)
		require.NoError(t, r.SetTexture(0, texture.NewTexture(texture.TexArray, img)))

		id := img.ID()
		assert.Equal(t, []string{
			fmt.Sprintf("GenTexture()=%d", id),
			fmt.Sprintf("BindTexture(%d,%d)", TEXTURE_2D_MULTISAMPLE_ARRAY, id),
			fmt.Sprintf("TexImage3DMultisample(%d,4,%d,64,64,4,true)", TEXTURE_2D_MULTISAMPLE_ARRAY, RGBA8),
		}, g.calls, "multisample stacks allocate every layer in one call")
	})

	t.Run("mipmaps are rejected", func(t *testing.T) {
		r, _ := newTestRenderer(t)
		img := texture.NewImage(texture.FormatRGBA8, 64, 64)
		img.SetSamples(4)
		img.SetGenerateMips(true)
		err := r.SetTexture(0, texture.NewTexture2D(img))
		require.ErrorIs(t, err, renderer.ErrUnsupportedOperation)
		assert.ErrorContains(t, err, "cannot carry mipmaps")
	})

	t.Run("needs multisample texture support", func(t *testing.T) {
		g := newFakeGL()
		r := newTestRendererOn(t, gl3Only{g}, g)
		img := texture.NewImage(texture.FormatRGBA8, 64, 64)
		img.SetSamples(4)
		err := r.SetTexture(0, texture.NewTexture2D(img))
		require.ErrorIs(t, err, renderer.ErrUnsupportedHardware)
		assert.ErrorContains(t, err, "multisample textures not supported")
	})
}

func TestSetTextureCubemap(t *testing.T) {
	r, g := newTestRenderer(t)
	faces := make([][]byte, 6)
	for i := range faces {
		faces[i] = make([]byte, 4)
	}
	img := texture.NewImage(texture.FormatRGBA8, 1, 1, faces...)
	require.NoError(t, r.SetTexture(0, texture.NewTexture(texture.TexCubeMap, img)))

	id := img.ID()
	want := []string{
		fmt.Sprintf("GenTexture()=%d", id),
		fmt.Sprintf("BindTexture(%d,%d)", TEXTURE_CUBE_MAP, id),
	}
	for i := range faces {
		want = append(want, fmt.Sprintf("TexImage2D(%d,0,%d,1,1,%d,%d,4)",
			TEXTURE_CUBE_MAP_POSITIVE_X+uint32(i), RGBA8, RGBA, UNSIGNED_BYTE))
	}
	want = append(want,
		fmt.Sprintf("TexParameteri(%d,%d,%d)", TEXTURE_CUBE_MAP, TEXTURE_MAG_FILTER, LINEAR),
		fmt.Sprintf("TexParameteri(%d,%d,%d)", TEXTURE_CUBE_MAP, TEXTURE_MIN_FILTER, LINEAR),
		fmt.Sprintf("TexParameterf(%d,%d,1)", TEXTURE_CUBE_MAP, TEXTURE_MAX_ANISOTROPY),
		fmt.Sprintf("TexParameteri(%d,%d,%d)", TEXTURE_CUBE_MAP, TEXTURE_WRAP_R, REPEAT),
		fmt.Sprintf("TexParameteri(%d,%d,%d)", TEXTURE_CUBE_MAP, TEXTURE_WRAP_T, REPEAT),
		fmt.Sprintf("TexParameteri(%d,%d,%d)", TEXTURE_CUBE_MAP, TEXTURE_WRAP_S, REPEAT),
	)
	assert.Equal(t, want, g.calls)
}

func TestSetTextureArray(t *testing.T) {
	t.Run("layers allocate then fill", func(t *testing.T) {
		r, g := newTestRenderer(t)
		img := texture.NewImage(texture.FormatRGBA8, 2, 2, make([]byte, 16), make([]byte, 16))
		require.NoError(t, r.SetTexture(0, texture.NewTexture(texture.TexArray, img)))

		id := img.ID()
		assert.Equal(t, []string{
			fmt.Sprintf("GenTexture()=%d", id),
			fmt.Sprintf("BindTexture(%d,%d)", TEXTURE_2D_ARRAY, id),
			fmt.Sprintf("TexImage3D(%d,0,%d,2,2,2,%d,%d,nil)", TEXTURE_2D_ARRAY, RGBA8, RGBA, UNSIGNED_BYTE),
			fmt.Sprintf("TexSubImage3D(%d,0,0,0,0,2,2,1,%d,%d,16)", TEXTURE_2D_ARRAY, RGBA, UNSIGNED_BYTE),
			fmt.Sprintf("TexSubImage3D(%d,0,0,0,1,2,2,1,%d,%d,16)", TEXTURE_2D_ARRAY, RGBA, UNSIGNED_BYTE),
			fmt.Sprintf("TexParameteri(%d,%d,%d)", TEXTURE_2D_ARRAY, TEXTURE_MAG_FILTER, LINEAR),
			fmt.Sprintf("TexParameteri(%d,%d,%d)", TEXTURE_2D_ARRAY, TEXTURE_MIN_FILTER, LINEAR),
			fmt.Sprintf("TexParameterf(%d,%d,1)", TEXTURE_2D_ARRAY, TEXTURE_MAX_ANISOTROPY),
			fmt.Sprintf("TexParameteri(%d,%d,%d)", TEXTURE_2D_ARRAY, TEXTURE_WRAP_T, REPEAT),
			fmt.Sprintf("TexParameteri(%d,%d,%d)", TEXTURE_2D_ARRAY, TEXTURE_WRAP_S, REPEAT),
		}, g.calls)
	})

	t.Run("layer limit", func(t *testing.T) {
		r, _ := newTestRenderer(t)
		img := texture.NewImage(texture.FormatRGBA8, 2, 2, make([][]byte, 300)...)
		err := r.SetTexture(0, texture.NewTexture(texture.TexArray, img))
		require.ErrorIs(t, err, renderer.ErrUnsupportedHardware)
		assert.ErrorContains(t, err, "300 layers exceeds the layer limit 256")
	})

	t.Run("needs array texture support", func(t *testing.T) {
		g := newFakeGL()
		g.strs[VERSION] = "OpenGL ES 3.0"
		g.strs[SHADING_LANGUAGE_VERSION] = "OpenGL ES GLSL ES 3.00"
		r := newTestRendererOn(t, baselineOnly{g}, g)
		img := texture.NewImage(texture.FormatRGBA8, 2, 2, make([]byte, 16))
		err := r.SetTexture(0, texture.NewTexture(texture.TexArray, img))
		require.ErrorIs(t, err, renderer.ErrUnsupportedHardware)
		assert.ErrorContains(t, err, "array textures not supported")
	})
}

func TestSetTexture3D(t *testing.T) {
	t.Run("volume upload", func(t *testing.T) {
		r, g := newTestRenderer(t)
		img := texture.NewImage(texture.FormatRGBA8, 2, 2, make([]byte, 32))
		img.SetDepth(2)
		require.NoError(t, r.SetTexture(0, texture.NewTexture(texture.Tex3D, img)))

		id := img.ID()
		assert.Equal(t, []string{
			fmt.Sprintf("GenTexture()=%d", id),
			fmt.Sprintf("BindTexture(%d,%d)", TEXTURE_3D, id),
			fmt.Sprintf("TexImage3D(%d,0,%d,2,2,2,%d,%d,32)", TEXTURE_3D, RGBA8, RGBA, UNSIGNED_BYTE),
			fmt.Sprintf("TexParameteri(%d,%d,%d)", TEXTURE_3D, TEXTURE_MAG_FILTER, LINEAR),
			fmt.Sprintf("TexParameteri(%d,%d,%d)", TEXTURE_3D, TEXTURE_MIN_FILTER, LINEAR),
			fmt.Sprintf("TexParameterf(%d,%d,1)", TEXTURE_3D, TEXTURE_MAX_ANISOTROPY),
			fmt.Sprintf("TexParameteri(%d,%d,%d)", TEXTURE_3D, TEXTURE_WRAP_R, REPEAT),
			fmt.Sprintf("TexParameteri(%d,%d,%d)", TEXTURE_3D, TEXTURE_WRAP_T, REPEAT),
			fmt.Sprintf("TexParameteri(%d,%d,%d)", TEXTURE_3D, TEXTURE_WRAP_S, REPEAT),
		}, g.calls)
	})

	t.Run("3D size limit", func(t *testing.T) {
		r, _ := newTestRenderer(t)
		img := texture.NewImage(texture.FormatRGBA8, 4096, 4096)
		img.SetDepth(4096)
		err := r.SetTexture(0, texture.NewTexture(texture.Tex3D, img))
		require.ErrorIs(t, err, renderer.ErrUnsupportedHardware)
		assert.ErrorContains(t, err, "maximum 3D size 2048")
	})
}

func TestSetTextureExplicitMips(t *testing.T) {
	t.Run("chain uploads level by level", func(t *testing.T) {
		r, g := newTestRenderer(t)
		img := texture.NewImage(texture.FormatRGBA8, 4, 4, make([]byte, 64+16+4))
		img.SetMipmapSizes([]int32{64, 16, 4})
		tex := texture.NewTexture2D(img)
		tex.SetMinFilter(texture.MinTrilinear)
		require.NoError(t, r.SetTexture(0, tex))

		assert.Equal(t, []string{
			fmt.Sprintf("TexImage2D(%d,0,%d,4,4,%d,%d,64)", TEXTURE_2D, RGBA8, RGBA, UNSIGNED_BYTE),
			fmt.Sprintf("TexImage2D(%d,1,%d,2,2,%d,%d,16)", TEXTURE_2D, RGBA8, RGBA, UNSIGNED_BYTE),
			fmt.Sprintf("TexImage2D(%d,2,%d,1,1,%d,%d,4)", TEXTURE_2D, RGBA8, RGBA, UNSIGNED_BYTE),
		}, g.calls[2:5])
		assert.Equal(t, 0, g.count("GenerateMipmap("))
		assert.Contains(t, g.calls, fmt.Sprintf("TexParameteri(%d,%d,%d)",
			TEXTURE_2D, TEXTURE_MIN_FILTER, LINEAR_MIPMAP_LINEAR))
	})

	t.Run("level sizes must fit the data", func(t *testing.T) {
		r, _ := newTestRenderer(t)
		img := texture.NewImage(texture.FormatRGBA8, 4, 4, make([]byte, 80))
		img.SetMipmapSizes([]int32{64, 32})
		err := r.SetTexture(0, texture.NewTexture2D(img))
		require.ErrorIs(t, err, renderer.ErrIllegalArgument)
		assert.ErrorContains(t, err, "mip level 1 spans [64,96) beyond the 80 data bytes")
	})
}

func TestSetTextureGeneratesMipmaps(t *testing.T) {
	r, g := newTestRenderer(t)
	img := rgbaImage(4, 4)
	tex := texture.NewTexture2D(img)
	tex.SetMinFilter(texture.MinTrilinear)

	require.NoError(t, r.SetTexture(0, tex))
	assert.Equal(t, 1, g.count("GenerateMipmap("))
	assert.Equal(t, fmt.Sprintf("GenerateMipmap(%d)", TEXTURE_2D), g.last("GenerateMipmap("))
	assert.True(t, img.MipsGenerated())
	assert.Contains(t, g.calls, fmt.Sprintf("TexParameteri(%d,%d,%d)",
		TEXTURE_2D, TEXTURE_MIN_FILTER, LINEAR_MIPMAP_LINEAR))

	g.reset()
	require.NoError(t, r.SetTexture(0, tex))
	assert.Empty(t, g.calls)

	// New pixel data invalidates the generated chain.
	g.reset()
	img.SetData(0, make([]byte, 64))
	require.NoError(t, r.SetTexture(0, tex))
	assert.Equal(t, []string{
		fmt.Sprintf("TexImage2D(%d,0,%d,4,4,%d,%d,64)", TEXTURE_2D, RGBA8, RGBA, UNSIGNED_BYTE),
		fmt.Sprintf("GenerateMipmap(%d)", TEXTURE_2D),
	}, g.calls)
}

func TestSetTextureMipGenerationNeedsFramebufferSupport(t *testing.T) {
	g := newFakeGL()
	r := newTestRendererOn(t, gl4Only{g}, g)
	tex := texture.NewTexture2D(rgbaImage(4, 4))
	tex.SetMinFilter(texture.MinTrilinear)

	err := r.SetTexture(0, tex)
	require.ErrorIs(t, err, renderer.ErrUnsupportedHardware)
	assert.ErrorContains(t, err, "mipmap generation requires framebuffer support")
	assert.Equal(t, 0, g.count("GenerateMipmap("))
}

func TestSetTextureMinFilterDegradesWithoutMips(t *testing.T) {
	r, g := newTestRenderer(t)
	img := rgbaImage(4, 4)
	tex := texture.NewTexture2D(img)
	tex.SetMinFilter(texture.MinTrilinear)
	img.SetGenerateMips(false)

	require.NoError(t, r.SetTexture(0, tex))
	assert.Equal(t, 0, g.count("GenerateMipmap("))
	assert.Contains(t, g.calls, fmt.Sprintf("TexParameteri(%d,%d,%d)",
		TEXTURE_2D, TEXTURE_MIN_FILTER, LINEAR),
		"a mip filter without a mip chain degrades to plain linear")
}

func TestSetTextureCompareModes(t *testing.T) {
	r, g := newTestRenderer(t)
	img := texture.NewImage(texture.FormatDepth24, 4, 4)
	tex := texture.NewTexture2D(img)
	require.NoError(t, r.SetTexture(0, tex))
	assert.Contains(t, g.calls, fmt.Sprintf("TexImage2D(%d,0,%d,4,4,%d,%d,nil)",
		TEXTURE_2D, DEPTH_COMPONENT24, DEPTH_COMPONENT, UNSIGNED_INT))

	g.reset()
	tex.SetCompare(texture.CompareLessOrEqual)
	require.NoError(t, r.SetTexture(0, tex))
	assert.Equal(t, []string{
		fmt.Sprintf("TexParameteri(%d,%d,%d)", TEXTURE_2D, TEXTURE_COMPARE_MODE, COMPARE_REF_TO_TEXTURE),
		fmt.Sprintf("TexParameteri(%d,%d,%d)", TEXTURE_2D, TEXTURE_COMPARE_FUNC, LEQUAL),
	}, g.calls)

	g.reset()
	tex.SetCompare(texture.CompareLess)
	require.NoError(t, r.SetTexture(0, tex))
	assert.Equal(t, []string{
		fmt.Sprintf("TexParameteri(%d,%d,%d)", TEXTURE_2D, TEXTURE_COMPARE_MODE, COMPARE_REF_TO_TEXTURE),
		fmt.Sprintf("TexParameteri(%d,%d,%d)", TEXTURE_2D, TEXTURE_COMPARE_FUNC, LESS),
	}, g.calls)

	g.reset()
	tex.SetCompare(texture.CompareOff)
	require.NoError(t, r.SetTexture(0, tex))
	assert.Equal(t, []string{
		fmt.Sprintf("TexParameteri(%d,%d,%d)", TEXTURE_2D, TEXTURE_COMPARE_MODE, NONE),
	}, g.calls)
}

func TestSetTextureAnisotropy(t *testing.T) {
	t.Run("explicit level", func(t *testing.T) {
		r, g := newTestRenderer(t)
		tex := texture.NewTexture2D(rgbaImage(2, 2))
		require.NoError(t, r.SetTexture(0, tex))

		g.reset()
		tex.SetAnisotropy(8)
		require.NoError(t, r.SetTexture(0, tex))
		assert.Equal(t, []string{
			fmt.Sprintf("TexParameterf(%d,%d,8)", TEXTURE_2D, TEXTURE_MAX_ANISOTROPY),
		}, g.calls)
	})

	t.Run("clamped to the hardware limit", func(t *testing.T) {
		r, g := newTestRenderer(t)
		tex := texture.NewTexture2D(rgbaImage(2, 2))
		tex.SetAnisotropy(32)
		require.NoError(t, r.SetTexture(0, tex))
		assert.Equal(t, fmt.Sprintf("TexParameterf(%d,%d,16)", TEXTURE_2D, TEXTURE_MAX_ANISOTROPY),
			g.last("TexParameterf("))
	})

	t.Run("renderer default applies when unset", func(t *testing.T) {
		r, g := newTestRenderer(t, WithDefaultAnisotropicFilter(4))
		require.NoError(t, r.SetTexture(0, texture.NewTexture2D(rgbaImage(2, 2))))
		assert.Equal(t, fmt.Sprintf("TexParameterf(%d,%d,4)", TEXTURE_2D, TEXTURE_MAX_ANISOTROPY),
			g.last("TexParameterf("))
	})
}

func TestSetTextureWrapChange(t *testing.T) {
	r, g := newTestRenderer(t)
	tex := texture.NewTexture2D(rgbaImage(2, 2))
	require.NoError(t, r.SetTexture(0, tex))

	g.reset()
	tex.SetWrap(texture.WrapS, texture.WrapEdgeClamp)
	require.NoError(t, r.SetTexture(0, tex))
	assert.Equal(t, []string{
		fmt.Sprintf("TexParameteri(%d,%d,%d)", TEXTURE_2D, TEXTURE_WRAP_S, CLAMP_TO_EDGE),
	}, g.calls)
}

func TestModifyTexture(t *testing.T) {
	t.Run("region update", func(t *testing.T) {
		r, g := newTestRenderer(t)
		tex := texture.NewTexture2D(rgbaImage(4, 4))
		require.NoError(t, r.SetTexture(0, tex))

		g.reset()
		require.NoError(t, r.ModifyTexture(tex, rgbaImage(2, 2), 1, 1))
		assert.Equal(t, []string{
			fmt.Sprintf("TexSubImage2D(%d,0,1,1,2,2,%d,%d,16)", TEXTURE_2D, RGBA, UNSIGNED_BYTE),
		}, g.calls)
	})

	t.Run("2D textures only", func(t *testing.T) {
		r, _ := newTestRenderer(t)
		img := texture.NewImage(texture.FormatRGBA8, 4, 4, nil, nil, nil, nil, nil, nil)
		err := r.ModifyTexture(texture.NewTexture(texture.TexCubeMap, img), rgbaImage(2, 2), 0, 0)
		require.ErrorIs(t, err, renderer.ErrUnsupportedOperation)
	})

	t.Run("format must match", func(t *testing.T) {
		r, _ := newTestRenderer(t)
		tex := texture.NewTexture2D(rgbaImage(4, 4))
		patch := texture.NewImage(texture.FormatR8, 2, 2, make([]byte, 4))
		err := r.ModifyTexture(tex, patch, 0, 0)
		require.ErrorIs(t, err, renderer.ErrIllegalArgument)
		assert.ErrorContains(t, err, "does not match")
	})

	t.Run("region must lie inside", func(t *testing.T) {
		r, _ := newTestRenderer(t)
		tex := texture.NewTexture2D(rgbaImage(4, 4))
		err := r.ModifyTexture(tex, rgbaImage(2, 2), 3, 3)
		require.ErrorIs(t, err, renderer.ErrIllegalArgument)
		assert.ErrorContains(t, err, "outside")
	})

	t.Run("replacement needs pixel data", func(t *testing.T) {
		r, _ := newTestRenderer(t)
		tex := texture.NewTexture2D(rgbaImage(4, 4))
		patch := texture.NewImage(texture.FormatRGBA8, 2, 2)
		err := r.ModifyTexture(tex, patch, 0, 0)
		require.ErrorIs(t, err, renderer.ErrIllegalArgument)
		assert.ErrorContains(t, err, "carries no pixel data")
	})
}

func TestDeleteImage(t *testing.T) {
	r, g := newTestRenderer(t)
	img := rgbaImage(2, 2)
	require.NoError(t, r.SetTexture(0, texture.NewTexture2D(img)))
	id := img.ID()

	g.reset()
	r.DeleteImage(img)
	assert.Equal(t, []string{fmt.Sprintf("DeleteTexture(%d)", id)}, g.calls)
	assert.Equal(t, uint32(0), img.ID())
	assert.True(t, img.UpdateNeeded(), "a deleted image re-uploads on next use")
	assert.Equal(t, 0, r.Statistics().Snapshot().Textures)

	g.reset()
	r.DeleteImage(img)
	assert.Empty(t, g.calls)
}

func TestSetTextureUnitRange(t *testing.T) {
	r, _ := newTestRenderer(t)
	tex := texture.NewTexture2D(rgbaImage(2, 2))

	err := r.SetTexture(32, tex)
	require.ErrorIs(t, err, renderer.ErrIllegalArgument)
	assert.ErrorContains(t, err, "texture unit 32, hardware supports [0,32)")

	require.ErrorIs(t, r.SetTexture(-1, tex), renderer.ErrIllegalArgument)
}

func TestSetTextureWithoutImage(t *testing.T) {
	r, _ := newTestRenderer(t)
	tex := texture.NewTexture(texture.Tex2D, nil)
	tex.SetName("lonely")

	err := r.SetTexture(0, tex)
	require.ErrorIs(t, err, renderer.ErrInvalidState)
	assert.ErrorContains(t, err, `texture "lonely" has no image`)
}
