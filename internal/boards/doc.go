// Package boards реализует вывод списка плат Zephyr.
//
// Включает:
//   - config.go   — корневой каталог Zephyr (ZEPHYR_BASE) и корни поиска
//   - discover.go — поиск плат в дереве boards/<arch>/<board>/*_defconfig
//   - format.go   — шаблоны вывода в стиле str.format: {name}, {arch:10}, {dir}
//   - lister.go   — фильтрация по регулярному выражению и рендеринг строк
//
// Lister не знает, откуда берутся платы: он получает срез Board от
// Discoverer и выводит их в том порядке, в котором они пришли.
package boards
