package normalizer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"supmatch/internal/model"
)

// cnNumFolder 中文数字替换为阿拉伯数字
// 直接子串替换，正月指农历一月；十以上的多位中文数字不支持，属已知限制
var cnNumFolder = strings.NewReplacer(
	"一", "1", "二", "2", "三", "3", "四", "4", "五", "5",
	"六", "6", "七", "7", "八", "8", "九", "9", "十", "10",
	"正", "1",
)

var (
	// 日期范围模式，按序尝试，首个结构匹配者生效
	reRangeCNFull  = regexp.MustCompile(`(\d{2,4})年(\d{1,2})月[到至和-](\d{1,2})月`)
	reRangeCNShort = regexp.MustCompile(`(\d{2,4})年(\d{1,2})[到至和-](\d{1,2})月`)
	reRangeNumeric = regexp.MustCompile(`(\d{4})(\d{1,2})-(\d{1,2})`)

	// 单日期模式，锚定串首，按序尝试
	reDateFull       = regexp.MustCompile(`^(\d{4})[-/.]?(\d{1,2})`)
	reDateShort      = regexp.MustCompile(`^(\d{2})(\d{2})`)
	reDateMonthOnly  = regexp.MustCompile(`^(\d{1,2})`)
	singleDateShapes = []*regexp.Regexp{reDateFull, reDateShort, reDateMonthOnly}
)

// NormalizeDate 标准化日期文本
//
// 返回带标记的日期键：单月为一个 YYYYMM，范围为升序月份列表，
// 无法识别时保留（去空白、换数字、去"月/年"后的）文本原样，供调用方按未解析处理。
func NormalizeDate(value string) model.DateKey {
	return normalizeDateAt(value, time.Now())
}

// normalizeDateAt 以指定时间为"当前年"基准做日期标准化，便于测试
func normalizeDateAt(value string, now time.Time) model.DateKey {
	value = cnNumFolder.Replace(stripWhitespace(value))

	// 范围识别优先于单日期解析
	if months, ok := ParseDateRange(value); ok {
		return model.MonthRange(months)
	}

	value = strings.ReplaceAll(value, "月", "")
	value = strings.ReplaceAll(value, "年", "")

	for _, re := range singleDateShapes {
		m := re.FindStringSubmatch(value)
		if m == nil {
			continue
		}

		var year, month string
		if len(m) == 3 {
			year, month = m[1], m[2]
			if len(year) == 2 {
				year = "20" + year
			}
		} else {
			year = strconv.Itoa(now.Year())
			month = m[1]
		}

		n, err := strconv.Atoi(month)
		if err != nil || n < 1 || n > 12 {
			continue
		}
		return model.SingleMonth(fmt.Sprintf("%s%02d", year, n))
	}

	return model.UnparsedDate(value)
}

// ParseDateRange 解析日期范围表达式，展开为升序 YYYYMM 月份列表
//
// 依次尝试中文完整式（2024年3月到5月）、中文简写式（2024年3-5月）、
// 数字式（202403-05）。月份越界或起始月大于结束月的匹配被丢弃，
// 继续尝试后续模式；全部落空返回 ok=false。
func ParseDateRange(value string) ([]string, bool) {
	for _, re := range []*regexp.Regexp{reRangeCNFull, reRangeCNShort, reRangeNumeric} {
		m := re.FindStringSubmatch(value)
		if m == nil {
			continue
		}

		year := m[1]
		if len(year) == 2 {
			year = "20" + year
		}

		start, _ := strconv.Atoi(m[2])
		end, _ := strconv.Atoi(m[3])
		if start < 1 || start > 12 || end < 1 || end > 12 || start > end {
			continue
		}

		months := make([]string, 0, end-start+1)
		for n := start; n <= end; n++ {
			months = append(months, fmt.Sprintf("%s%02d", year, n))
		}
		return months, true
	}

	return nil, false
}
