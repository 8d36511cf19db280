package wannasurf

// Field 表示浪点记录中的一个固定字段，顺序即导出时的列顺序
type Field int

const (
	Distance Field = iota
	Walk
	EasyToFind
	PublicAccess
	SpecialAccess
	WaveQuality
	Experience
	Frequency
	Type
	Direction
	Bottom
	Power
	NormalLength
	GoodDayLength
	GoodSwellDirection
	GoodWindDirection
	SwellSize
	BestTidePosition
	BestTideMovement
	AdditionalInformation
	Latitude
	Longitude

	FieldCount int = iota
)

// 字段的取值来源
type Source int

const (
	SourceAccess Source = iota
	SourceCharacteristics
	SourceAdditional
	SourceCoordinates
)

type fieldDef struct {
	Key    string
	Header string
	Source Source
	Labels []string // 页面上能识别的标签文本，仅标签驱动的字段有
}

var fieldDefs = [FieldCount]fieldDef{
	Distance:              {"distance", "Distance", SourceAccess, []string{"distance"}},
	Walk:                  {"walk", "Walk", SourceAccess, []string{"walk"}},
	EasyToFind:            {"easy_to_find", "Easy to find?", SourceAccess, []string{"easy to find?"}},
	PublicAccess:          {"public_access", "Public access?", SourceAccess, []string{"public access?"}},
	SpecialAccess:         {"special_access", "Special access", SourceAccess, []string{"special access"}},
	WaveQuality:           {"wave_quality", "Wave quality", SourceCharacteristics, []string{"wave quality"}},
	Experience:            {"experience", "Experience", SourceCharacteristics, []string{"experience"}},
	Frequency:             {"frequency", "Frequency", SourceCharacteristics, []string{"frequency"}},
	Type:                  {"type", "Type", SourceCharacteristics, []string{"type"}},
	Direction:             {"direction", "Direction", SourceCharacteristics, []string{"direction"}},
	Bottom:                {"bottom", "Bottom", SourceCharacteristics, []string{"bottom"}},
	Power:                 {"power", "Power", SourceCharacteristics, []string{"power"}},
	NormalLength:          {"normal_length", "Normal length", SourceCharacteristics, []string{"normal length"}},
	GoodDayLength:         {"good_day_length", "Good day length", SourceCharacteristics, []string{"good day length"}},
	GoodSwellDirection:    {"good_swell_direction", "Good swell direction", SourceCharacteristics, []string{"good swell direction"}},
	GoodWindDirection:     {"good_wind_direction", "Good wind direction", SourceCharacteristics, []string{"good wind direction"}},
	SwellSize:             {"swell_size", "Swell size", SourceCharacteristics, []string{"swell size"}},
	BestTidePosition:      {"best_tide_position", "Best tide position", SourceCharacteristics, []string{"best tide position"}},
	BestTideMovement:      {"best_tide_movement", "Best tide movement", SourceCharacteristics, []string{"best tide movement"}},
	AdditionalInformation: {"additional_information", "Additional Information", SourceAdditional, nil},
	Latitude:              {"latitude", "Latitude", SourceCoordinates, []string{"latitude"}},
	Longitude:             {"longitude", "Longitude", SourceCoordinates, []string{"longitude"}},
}

func (f Field) String() string {
	if f < 0 || int(f) >= FieldCount {
		return "unknown"
	}
	return fieldDefs[f].Key
}

// 导出表格时的列名
func (f Field) Header() string {
	if f < 0 || int(f) >= FieldCount {
		return ""
	}
	return fieldDefs[f].Header
}

func (f Field) Source() Source {
	return fieldDefs[f].Source
}

// 按列顺序返回全部字段
func Fields() []Field {
	fields := make([]Field, FieldCount)
	for i := range fields {
		fields[i] = Field(i)
	}
	return fields
}

// 平铺表的表头：浪点名称加22个字段
func FlatHeader() []string {
	header := make([]string, 0, FieldCount+1)
	header = append(header, "surf spot name")
	for _, f := range Fields() {
		header = append(header, f.Header())
	}
	return header
}

// LabelSet 是规范化后的标签文本到字段的映射
type LabelSet struct {
	Name   string
	labels map[string]Field
}

func (s LabelSet) Lookup(label string) (Field, bool) {
	f, ok := s.labels[normalizeLabel(label)]
	return f, ok
}

func (s LabelSet) Len() int {
	return len(s.labels)
}

func newLabelSet(name string, source Source) LabelSet {
	set := LabelSet{Name: name, labels: make(map[string]Field)}
	for _, f := range Fields() {
		def := fieldDefs[f]
		if def.Source != source {
			continue
		}
		for _, l := range def.Labels {
			set.labels[normalizeLabel(l)] = f
		}
	}
	return set
}

var (
	AccessLabels         = newLabelSet("access", SourceAccess)
	CharacteristicLabels = newLabelSet("characteristics", SourceCharacteristics)
)
