package blocks

import buildblocks "github.com/pagehaven/go-builder/blocks"

type (
	Block             = buildblocks.Block
	Type              = buildblocks.Type
	LinkContent       = buildblocks.LinkContent
	HeaderContent     = buildblocks.HeaderContent
	SocialGridContent = buildblocks.SocialGridContent
	SocialLink        = buildblocks.SocialLink
	TitleContent      = buildblocks.TitleContent
	TextContent       = buildblocks.TextContent
	HeroContent       = buildblocks.HeroContent
	EmbedContent      = buildblocks.EmbedContent
	DoubleLinkContent = buildblocks.DoubleLinkContent
	LabeledLink       = buildblocks.LabeledLink
	FileContent       = buildblocks.FileContent
)

const (
	TypeHeader     = buildblocks.TypeHeader
	TypeSocialGrid = buildblocks.TypeSocialGrid
	TypeSeparator  = buildblocks.TypeSeparator
	TypeTitle      = buildblocks.TypeTitle
	TypeText       = buildblocks.TypeText
	TypeHero       = buildblocks.TypeHero
	TypeLink       = buildblocks.TypeLink
	TypeDoubleLink = buildblocks.TypeDoubleLink
	TypeFile       = buildblocks.TypeFile
	TypeImage      = buildblocks.TypeImage
	TypeEmbed      = buildblocks.TypeEmbed
)

var (
	Types          = buildblocks.Types
	Known          = buildblocks.Known
	DefaultContent = buildblocks.DefaultContent
	DecodeContent  = buildblocks.DecodeContent
)
