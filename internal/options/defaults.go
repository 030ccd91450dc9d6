package options

// Palette is the default series palette.
var Palette = []string{
	"#4e79a7", "#f28e2b", "#e15759", "#76b7b2", "#59a14f",
	"#edc948", "#b07aa1", "#ff9da7", "#9c755f", "#bab0ac",
}

var fillPalette = []any{
	"rgba(78,121,167,0.5)", "rgba(242,142,43,0.5)", "rgba(225,87,89,0.5)",
	"rgba(118,183,178,0.5)", "rgba(89,161,79,0.5)", "rgba(237,201,72,0.5)",
	"rgba(176,122,161,0.5)", "rgba(255,157,167,0.5)", "rgba(156,117,95,0.5)",
	"rgba(186,176,172,0.5)",
}

func strokePalette() []any {
	o := make([]any, len(Palette))
	for i := range Palette {
		o[i] = Palette[i]
	}
	return o
}

const annotateLabel = `<%=(v1 == '' ? '' : v1) + (v1 != '' && v2 != '' ? ' - ' : '') + (v2 == '' ? '' : v2) + (v1 != '' || v2 != '' ? ': ' : '') + v3%>`

const segmentAnnotateLabel = `<%=(v1 == '' ? '' : v1 + ': ') + v2 + ' (' + v6 + ' %)'%>`

// Common returns the defaults shared by every chart type.
func Common() Map {
	return Map{
		// surface
		"canvasBackgroundColor": Of("none"),
		"canvasBorders":         Of(false),
		"canvasBordersWidth":    Of(3),
		"canvasBordersColor":    Of("black"),
		"canvasBordersStyle":    Of("solid"),
		"spaceTop":              Of(0),
		"spaceBottom":           Of(0),
		"spaceLeft":             Of(0),
		"spaceRight":            Of(0),
		"textScale":             Of(1),
		"lineScale":             Of(1),
		"spaceScale":            Of(1),
		"zeroValue":             Of(1e-10),
		"defaultFillColor":      List(fillPalette...),
		"defaultStrokeColor":    List(strokePalette()...),
		"defaultFontFamily":     Of("sans-serif"),

		// title, subtitle, footnote
		"graphTitle":                Of(""),
		"graphTitleFontFamily":      Of("sans-serif"),
		"graphTitleFontSize":        Of(24),
		"graphTitleFontStyle":       Of("bold"),
		"graphTitleFontColor":       Of("#666"),
		"graphTitleSpaceBefore":     Of(5),
		"graphTitleSpaceAfter":      Of(5),
		"graphTitleBackgroundColor": Of("none"),
		"graphSubTitle":             Of(""),
		"graphSubTitleFontFamily":   Of("sans-serif"),
		"graphSubTitleFontSize":     Of(18),
		"graphSubTitleFontStyle":    Of("normal"),
		"graphSubTitleFontColor":    Of("#666"),
		"graphSubTitleSpaceBefore":  Of(5),
		"graphSubTitleSpaceAfter":   Of(5),
		"footNote":                  Of(""),
		"footNoteFontFamily":        Of("sans-serif"),
		"footNoteFontSize":          Of(8),
		"footNoteFontStyle":         Of("bold"),
		"footNoteFontColor":         Of("#666"),
		"footNoteSpaceBefore":       Of(5),
		"footNoteSpaceAfter":        Of(5),

		// axis labels and units
		"xAxisLabel":            Of(""),
		"xAxisFontFamily":       Of("sans-serif"),
		"xAxisFontSize":         Of(16),
		"xAxisFontStyle":        Of("normal"),
		"xAxisFontColor":        Of("#666"),
		"xAxisLabelSpaceBefore": Of(5),
		"xAxisLabelSpaceAfter":  Of(5),
		"yAxisLabel":            Of(""),
		"yAxisLabel2":           Of(""),
		"yAxisFontFamily":       Of("sans-serif"),
		"yAxisFontSize":         Of(16),
		"yAxisFontStyle":        Of("normal"),
		"yAxisFontColor":        Of("#666"),
		"yAxisLabelSpaceLeft":   Of(5),
		"yAxisLabelSpaceRight":  Of(5),
		"yAxisUnit":             Of(""),
		"yAxisUnit2":            Of(""),
		"yAxisUnitFontFamily":   Of("sans-serif"),
		"yAxisUnitFontSize":     Of(8),
		"yAxisUnitFontStyle":    Of("normal"),
		"yAxisUnitFontColor":    Of("#666"),
		"yAxisUnitSpaceBefore":  Of(5),
		"yAxisUnitSpaceAfter":   Of(5),
		"yAxisLeft":             Of(true),
		"yAxisRight":            Of(false),
		"xAxisBottom":           Of(true),
		"xAxisTop":              Of(false),
		"xAxisSpaceBefore":      Of(5),
		"xAxisSpaceAfter":       Of(5),
		"yAxisSpaceLeft":        Of(5),
		"yAxisSpaceRight":       Of(5),

		// scale
		"scaleOverlay":          Of(false),
		"scaleOverride":         Of(false),
		"scaleSteps":            Of(0),
		"scaleStepWidth":        Of(0),
		"scaleStartValue":       Of(0),
		"scaleOverride2":        Of(false),
		"scaleSteps2":           Of(0),
		"scaleStepWidth2":       Of(0),
		"scaleStartValue2":      Of(0),
		"scaleLineColor":        Of("rgba(0,0,0,.1)"),
		"scaleLineWidth":        Of(1),
		"scaleLineStyle":        Of("solid"),
		"scaleLabel":            Of("<%=value%>"),
		"scaleLabel2":           Of("<%=value%>"),
		"scaleFontFamily":       Of("sans-serif"),
		"scaleFontSize":         Of(12),
		"scaleFontStyle":        Of("normal"),
		"scaleFontColor":        Of("#666"),
		"scaleShowGridLines":    Of(true),
		"scaleXGridLinesStep":   Of(1),
		"scaleYGridLinesStep":   Of(1),
		"scaleGridLineColor":    Of("rgba(0,0,0,.05)"),
		"scaleGridLineWidth":    Of(1),
		"scaleGridLineStyle":    Of("solid"),
		"scaleTickSizeLeft":     Of(5),
		"scaleTickSizeRight":    Of(5),
		"scaleTickSizeBottom":   Of(5),
		"scaleTickSizeTop":      Of(5),
		"showYAxisMin":          Of(true),
		"showXLabels":           Of(1),
		"firstLabelToShow":      Of(1),
		"rotateLabels":          Of("smart"),
		"logarithmic":           Of(false),
		"logarithmic2":          Of(false),
		"graphMax":              Of("DEFAULT"),
		"graphMin2":             Of("DEFAULT"),
		"graphMax2":             Of("DEFAULT"),
		"yAxisMinimumInterval":  Of("none"),
		"yAxisMinimumInterval2": Of("none"),
		"graphMaximized":        Of(false),
		"maxSteps":              Of(0),

		// legend
		"legend":                           Of(false),
		"legendPosition":                   Of("bottom"),
		"legendAlign":                      Of("center"),
		"legendFontFamily":                 Of("sans-serif"),
		"legendFontSize":                   Of(12),
		"legendFontStyle":                  Of("normal"),
		"legendFontColor":                  Of("#666"),
		"legendBlockSize":                  Of(15),
		"legendBorders":                    Of(true),
		"legendBordersWidth":               Of(1),
		"legendBordersColor":               Of("#666"),
		"legendBordersSpaceBefore":         Of(5),
		"legendBordersSpaceAfter":          Of(5),
		"legendBordersSpaceLeft":           Of(5),
		"legendBordersSpaceRight":          Of(5),
		"legendSpaceBeforeText":            Of(5),
		"legendSpaceAfterText":             Of(5),
		"legendSpaceLeftText":              Of(5),
		"legendSpaceRightText":             Of(5),
		"legendSpaceBetweenBoxAndText":     Of(5),
		"legendSpaceBetweenTextHorizontal": Of(5),
		"legendSpaceBetweenTextVertical":   Of(5),
		"legendFillColor":                  Of("none"),
		"maxLegendCols":                    Of(999),
		"legendReverse":                    Of(false),
		"legendOnDataSeries":               Of(false),

		// annotations
		"annotateDisplay":          Of(false),
		"annotateFunction":         Of("mousemove"),
		"annotateFontFamily":       Of("sans-serif"),
		"annotateFontSize":         Of(12),
		"annotateFontStyle":        Of("normal"),
		"annotateFontColor":        Of("#fff"),
		"annotateBackgroundColor":  Of("rgba(0,0,0,0.8)"),
		"annotateBorderColor":      Of("none"),
		"annotateBorderWidth":      Of(0),
		"annotatePadding":          Of(4),
		"annotateOffsetX":          Of(10),
		"annotateOffsetY":          Of(10),
		"pointHitDetectionRadius":  Of(10),
		"detectAnnotateOnFullLine": Of(true),

		// in graph data
		"inGraphDataShow":       Of(false),
		"inGraphDataFontFamily": Of("sans-serif"),
		"inGraphDataFontSize":   Of(12),
		"inGraphDataFontStyle":  Of("normal"),
		"inGraphDataFontColor":  Of("#666"),

		// animation
		"animation":                 Of(true),
		"animationSteps":            Of(60),
		"animationEasing":           Of("easeOutQuart"),
		"animationStartValue":       Of(0),
		"animationStopValue":        Of(1),
		"animationCount":            Of(1),
		"animationPauseTime":        Of(5),
		"animationBackward":         Of(false),
		"animationStartWithDataset": Of(1),
		"animationStartWithData":    Of(1),
		"animationLeftToRight":      Of(false),
		"animationByDataset":        Of(false),
		"responsive":                Of(false),
		"responsiveAnimation":       Of(false),
		"maintainAspectRatio":       Of(true),
		"dynamicDisplay":            Of(false),

		// templates and numbers
		"templatesOpenTag":  Of("<%="),
		"templatesCloseTag": Of("%>"),
		"statsDecimals":     Of(2),
		"decimalSeparator":  Of("."),
		"thousandSeparator": Of(""),
		"roundNumber":       Of("none"),

		"extrapolateMissingData": Of(true),
	}
}

// typeBase holds the keys every chart type sets itself. They are kept out of
// Common so the two layers never hold the same key.
func typeBase() Map {
	return Map{
		"annotateLabel":        Of(annotateLabel),
		"inGraphDataTmpl":      Of("<%=v3%>"),
		"inGraphDataAlign":     Of("center"),
		"inGraphDataVAlign":    Of("bottom"),
		"inGraphDataRotate":    Of(0),
		"inGraphDataPaddingX":  Of(0),
		"inGraphDataPaddingY":  Of(3),
		"inGraphDataXPosition": Of(2),
		"inGraphDataYPosition": Of(3),
		"graphMin":             Of("DEFAULT"),
		"scaleShowLabels":      Of(true),
		"scaleShowLine":        Of(true),
	}
}

func merge(dst Map, src ...Map) Map {
	for _, m := range src {
		for k, v := range m {
			dst[k] = v
		}
	}
	return dst
}

func barDefaults() Map {
	return Map{
		"barShowStroke":     Of(true),
		"barStrokeWidth":    Of(2),
		"barValueSpacing":   Of(5),
		"barDatasetSpacing": Of(1),
		"maxBarWidth":       Of("none"),
		"datasetFill":       Of(true),
		// line options are used by line datasets of mixed charts
		"bezierCurve":         Of(true),
		"bezierCurveTension":  Of(0.4),
		"pointDot":            Of(true),
		"pointDotRadius":      Of(4),
		"pointDotStrokeWidth": Of(1),
		"datasetStrokeWidth":  Of(2),
		"datasetStrokeStyle":  Of("solid"),
		"linkType":            Of(0),
	}
}

func lineDefaults() Map {
	return Map{
		"bezierCurve":         Of(true),
		"bezierCurveTension":  Of(0.4),
		"pointDot":            Of(true),
		"pointDotRadius":      Of(4),
		"pointDotStrokeWidth": Of(1),
		"datasetFill":         Of(true),
		"datasetStrokeWidth":  Of(2),
		"datasetStrokeStyle":  Of("solid"),
		"linkType":            Of(0),
	}
}

func segmentDefaults(cutout float64) Map {
	return Map{
		"segmentShowStroke":         Of(true),
		"segmentStrokeColor":        Of("#fff"),
		"segmentStrokeWidth":        Of(2),
		"segmentStrokeStyle":        Of("solid"),
		"percentageInnerCutout":     Of(cutout),
		"animateRotate":             Of(true),
		"animateScale":              Of(false),
		"startAngle":                Of(90),
		"radiusScale":               Of(1),
		"annotateLabel":             Of(segmentAnnotateLabel),
		"inGraphDataTmpl":           Of("<%=v6 + ' %'%>"),
		"inGraphDataVAlign":         Of("middle"),
		"inGraphDataRadiusPosition": Of(3),
		"inGraphDataAnglePosition":  Of(2),
	}
}

func radialScaleDefaults() Map {
	return Map{
		"scaleShowLabelBackdrop": Of(true),
		"scaleBackdropColor":     Of("rgba(255,255,255,0.75)"),
		"scaleBackdropPaddingY":  Of(2),
		"scaleBackdropPaddingX":  Of(2),
		"startAngle":             Of(90),
		"graphMin":               Of(0),
	}
}

func radarDefaults() Map {
	return merge(radialScaleDefaults(), Map{
		"angleShowLineOut":          Of(true),
		"angleLineColor":            Of("rgba(0,0,0,.1)"),
		"angleLineWidth":            Of(1),
		"pointLabelFontFamily":      Of("sans-serif"),
		"pointLabelFontStyle":       Of("normal"),
		"pointLabelFontSize":        Of(12),
		"pointLabelFontColor":       Of("#666"),
		"pointDot":                  Of(true),
		"pointDotRadius":            Of(3),
		"pointDotStrokeWidth":       Of(1),
		"datasetFill":               Of(true),
		"datasetStrokeWidth":        Of(2),
		"datasetStrokeStyle":        Of("solid"),
		"scaleShowLabels":           Of(false),
		"inGraphDataVAlign":         Of("middle"),
		"inGraphDataRadiusPosition": Of(3),
	})
}

func polarDefaults() Map {
	return merge(radialScaleDefaults(), segmentDefaults(0), Map{
		"graphMin":        Of(0),
		"inGraphDataTmpl": Of("<%=v2%>"),
		"annotateLabel":   Of(`<%=(v1 == '' ? '' : v1 + ': ') + v2%>`),
	})
}

// ChartDefaults returns the hardcoded defaults of one chart type.
func ChartDefaults(c Chart) Map {
	m := typeBase()
	switch c {
	case Bar, HorizontalBar, StackedBar, HorizontalStackedBar:
		merge(m, barDefaults())
		if c.Stacked() {
			m["barDatasetSpacing"] = Of(0)
		}
		if c.Horizontal() {
			merge(m, Map{
				"inGraphDataXPosition": Of(3),
				"inGraphDataYPosition": Of(2),
				"inGraphDataAlign":     Of("left"),
				"inGraphDataVAlign":    Of("middle"),
				"inGraphDataPaddingX":  Of(3),
				"inGraphDataPaddingY":  Of(0),
			})
		}
	case Line:
		merge(m, lineDefaults())
	case Pie:
		merge(m, segmentDefaults(0))
	case Doughnut:
		merge(m, segmentDefaults(50))
	case Radar:
		merge(m, radarDefaults())
	case PolarArea:
		merge(m, polarDefaults())
	}
	return m
}
