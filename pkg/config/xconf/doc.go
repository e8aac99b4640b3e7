// Package xconf 基于 koanf 加载 YAML/JSON 配置文件。
//
// 配置在加载时一次性读入，不监听文件变化。
// 典型用法是先填好默认值，再用配置文件覆盖：
//
//	cfg := defaults()
//	c, err := xconf.New("macconv.yaml")
//	if err != nil {
//	    return err
//	}
//	if err := c.Unmarshal("", &cfg); err != nil {
//	    return err
//	}
//
// 文件中没有出现的键保持目标结构体中的原值。
// 时长字段可以写成 "900ms"、"10s" 等字符串。
package xconf
