package matcher

import (
	"supmatch/internal/model"
	"supmatch/internal/normalizer"
)

// Classifier 逐行匹配分类器
//
// 持有一次分析运行内的全部可变状态（已处理键集合与日期范围记录），
// 第 N 行的判定依赖前 N-1 行的完整历史，必须按输入行序串行调用。
// 索引建成后只读，分类器独占两个累加器，不得跨协程共享。
type Classifier struct {
	index     SupplierIndex
	processed map[model.Key]struct{}
	// ranges 记录每个 (客户, 产品) 最近一次出现的日期范围月份，
	// 用于识别"单月落入先前范围"类的交叉重复
	ranges map[model.PairKey][]string
}

// NewClassifier 创建分类器，累加器为空
func NewClassifier(index SupplierIndex) *Classifier {
	return &Classifier{
		index:     index,
		processed: make(map[model.Key]struct{}),
		ranges:    make(map[model.PairKey][]string),
	}
}

// ClassifyRaw 标准化三个原始字段后分类
func (c *Classifier) ClassifyRaw(dateText, customerText, productText string) *model.MatchResult {
	date := normalizer.NormalizeDate(dateText)
	customer := normalizer.Normalize(customerText, model.RoleCustomer)
	product := normalizer.Normalize(productText, model.RoleProduct)
	return c.Classify(date, customer, product)
}

// Classify 对一条已标准化的候选数据分类
//
// 重复判定先于分支选择且与其独立。范围分支无论是否重复都会执行，
// 并覆盖该 (客户, 产品) 的范围记录；单键分支仅在非重复时查找。
// 分类结束后搜索键无条件加入已处理集合（范围按字面逗号键加入，不展开）。
func (c *Classifier) Classify(date model.DateKey, customer, product string) *model.MatchResult {
	key := model.Key{Date: date.Token(), Customer: customer, Product: product}
	pair := model.PairKey{Customer: customer, Product: product}

	result := &model.MatchResult{}
	result.IsDuplicate = c.checkDuplicate(date, key, pair)

	if date.IsRange() {
		result.IsDateRange = true
		c.ranges[pair] = date.Months

		allMatch := true
		for _, month := range date.Months {
			suppliers, ok := c.index[model.Key{Date: month, Customer: customer, Product: product}]
			if !ok {
				allMatch = false
				continue
			}
			for _, s := range suppliers {
				result.MatchedSuppliers = append(result.MatchedSuppliers,
					model.SupplierMatch{Month: month, Supplier: s})
			}
		}
		result.IsAllMatch = allMatch && len(result.MatchedSuppliers) > 0
	} else if !result.IsDuplicate {
		if suppliers, ok := c.index[key]; ok {
			result.IsMatch = true
			for _, s := range suppliers {
				result.MatchedSuppliers = append(result.MatchedSuppliers,
					model.SupplierMatch{Month: key.Date, Supplier: s})
			}
		}
	}

	c.processed[key] = struct{}{}

	return result
}

// checkDuplicate 判断候选键是否与先前处理过的数据重复
func (c *Classifier) checkDuplicate(date model.DateKey, key model.Key, pair model.PairKey) bool {
	// 完全相同的键
	if _, ok := c.processed[key]; ok {
		return true
	}

	// 单月落在同一 (客户, 产品) 先前记录的范围内
	if !date.IsRange() {
		for _, month := range c.ranges[pair] {
			if month == key.Date {
				return true
			}
		}
		return false
	}

	// 范围展开后的某个单月此前已单独处理过
	for _, month := range date.Months {
		single := model.Key{Date: month, Customer: pair.Customer, Product: pair.Product}
		if _, ok := c.processed[single]; ok {
			return true
		}
	}

	return false
}
