package syncbuffer

// Tag is a 32-bit property tag as it appears on the wire.
type Tag uint32

// PropType is the type code held in the low bits of a Tag.
type PropType uint16

const (
	typeMask  = 0x0fff
	MvFlag    = 0x1000
	namedFlag = Tag(0x80000000)
)

const (
	PtUnspecified PropType = 0x0000
	PtNull        PropType = 0x0001
	PtShort       PropType = 0x0002
	PtLong        PropType = 0x0003
	PtFloat       PropType = 0x0004
	PtDouble      PropType = 0x0005
	PtCurrency    PropType = 0x0006
	PtAppTime     PropType = 0x0007
	PtError       PropType = 0x000a
	PtBool        PropType = 0x000b
	PtLong8       PropType = 0x0014
	PtString8     PropType = 0x001e
	PtUnicode     PropType = 0x001f
	PtSysTime     PropType = 0x0040
	PtCLSID       PropType = 0x0048
	PtSvrEID      PropType = 0x00fb
	PtBinary      PropType = 0x0102
)

var propTypeNames = map[PropType]string{
	PtUnspecified: "PT_UNSPECIFIED",
	PtNull:        "PT_NULL",
	PtShort:       "PT_SHORT",
	PtLong:        "PT_LONG",
	PtFloat:       "PT_FLOAT",
	PtDouble:      "PT_DOUBLE",
	PtCurrency:    "PT_CURRENCY",
	PtAppTime:     "PT_APPTIME",
	PtError:       "PT_ERROR",
	PtBool:        "PT_BOOL",
	PtLong8:       "PT_LONG8",
	PtString8:     "PT_STRING",
	PtUnicode:     "PT_UNICODE",
	PtSysTime:     "PT_SYSTIME",
	PtCLSID:       "PT_CLSID",
	PtSvrEID:      "PT_SVREID",
	PtBinary:      "PT_BINARY",
}

// structural markers: a bare tag with no payload
const (
	TagStartTopFld            Tag = 0x40090003
	TagEndFolder              Tag = 0x400B0003
	TagStartSubFld            Tag = 0x400A0003
	TagStartMessage           Tag = 0x400C0003
	TagEndMessage             Tag = 0x400D0003
	TagStartFAIMsg            Tag = 0x40100003
	TagStartEmbed             Tag = 0x40010003
	TagEndEmbed               Tag = 0x40020003
	TagStartRecip             Tag = 0x40030003
	TagEndToRecip             Tag = 0x40040003
	TagNewAttach              Tag = 0x40000003
	TagEndAttach              Tag = 0x400E0003
	TagIncrSyncChg            Tag = 0x40120003
	TagIncrSyncChgPartial     Tag = 0x407D0003
	TagIncrSyncDel            Tag = 0x40130003
	TagIncrSyncEnd            Tag = 0x40140003
	TagIncrSyncRead           Tag = 0x402F0003
	TagIncrSyncStateBegin     Tag = 0x403A0003
	TagIncrSyncStateEnd       Tag = 0x403B0003
	TagIncrSyncProgressMode   Tag = 0x4074000B
	TagIncrSyncProgressPerMsg Tag = 0x4075000B
	TagIncrSyncMessage        Tag = 0x40150003
	TagIncrSyncGroupInfo      Tag = 0x407B0102
	TagFXErrorInfo            Tag = 0x40180003
)

// ICS state properties carrying an IDSet
const (
	TagIdsetGiven   Tag = 0x40170003
	TagCnsetSeen    Tag = 0x67960102
	TagCnsetSeenFAI Tag = 0x67DA0102
	TagCnsetRead    Tag = 0x67D20102
)

// properties carrying XIDs
const (
	TagSourceKey             Tag = 0x65E00102
	TagParentSourceKey       Tag = 0x65E10102
	TagChangeKey             Tag = 0x65E20102
	TagPredecessorChangeList Tag = 0x65E30102
)

var markerTags = map[Tag]string{
	TagStartTopFld:            "PidTagStartTopFld",
	TagEndFolder:              "PidTagEndFolder",
	TagStartSubFld:            "PidTagStartSubFld",
	TagStartMessage:           "PidTagStartMessage",
	TagEndMessage:             "PidTagEndMessage",
	TagStartFAIMsg:            "PidTagStartFAIMsg",
	TagStartEmbed:             "PidTagStartEmbed",
	TagEndEmbed:               "PidTagEndEmbed",
	TagStartRecip:             "PidTagStartRecip",
	TagEndToRecip:             "PidTagEndToRecip",
	TagNewAttach:              "PidTagNewAttach",
	TagEndAttach:              "PidTagEndAttach",
	TagIncrSyncChg:            "PidTagIncrSyncChg",
	TagIncrSyncChgPartial:     "PidTagIncrSyncChgPartial",
	TagIncrSyncDel:            "PidTagIncrSyncDel",
	TagIncrSyncEnd:            "PidTagIncrSyncEnd",
	TagIncrSyncRead:           "PidTagIncrSyncRead",
	TagIncrSyncStateBegin:     "PidTagIncrSyncStateBegin",
	TagIncrSyncStateEnd:       "PidTagIncrSyncStateEnd",
	TagIncrSyncProgressMode:   "PidTagIncrSyncProgressMode",
	TagIncrSyncProgressPerMsg: "PidTagIncrSyncProgressPerMsg",
	TagIncrSyncMessage:        "PidTagIncrSyncMessage",
	TagIncrSyncGroupInfo:      "PidTagIncrSyncGroupInfo",
	TagFXErrorInfo:            "PidTagFXErrorInfo",
}

var idsetTags = map[Tag]string{
	TagIdsetGiven:   "PidTagIdsetGiven",
	TagCnsetSeen:    "PidTagCnsetSeen",
	TagCnsetSeenFAI: "PidTagCnsetSeenFAI",
	TagCnsetRead:    "PidTagCnsetRead",
}

var xidTags = map[Tag]string{
	TagSourceKey:       "PidTagSourceKey",
	TagParentSourceKey: "PidTagParentSourceKey",
	TagChangeKey:       "PidTagChangeKey",
}

// GLOBSet stack machine opcodes
const (
	globEnd     = 0x00
	globPush1   = 0x01
	globPush6   = 0x06
	globBitmask = 0x42
	globPop     = 0x50
	globRange   = 0x52
)

// width of a GLOBCNT in bytes
const globcntSize = 6

const (
	guidSize     = 16
	filetimeUnix = 11644473600
	ticksPerSec  = 10000000
)
